package parcel

import "time"

type ParcelDB struct {
	ID                 int64
	CreatedBy          string
	Title              string
	Type               string
	WeightKg           *float64
	SenderName         string
	SenderDistrict     string
	ReceiverName       string
	ReceiverDistrict   string
	ReceiverAddress    string
	DeliveryCost       int64
	PaymentStatus      string
	DeliveryStatus     string
	CashoutStatus      string
	AssignedRiderID    *int64
	AssignedRiderName  *string
	AssignedRiderEmail *string
	AssignedAt         *time.Time
	PickedAt           *time.Time
	DeliveredAt        *time.Time
	CashedOutAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ParcelModifyDB struct {
	ID                 *int64
	CreatedBy          *string
	Title              *string
	Type               *string
	WeightKg           *float64
	SenderName         *string
	SenderDistrict     *string
	ReceiverName       *string
	ReceiverDistrict   *string
	ReceiverAddress    *string
	DeliveryCost       *int64
	PaymentStatus      *string
	DeliveryStatus     *string
	CashoutStatus      *string
	AssignedRiderID    *int64
	AssignedRiderName  *string
	AssignedRiderEmail *string
	AssignedAt         *time.Time
	PickedAt           *time.Time
	DeliveredAt        *time.Time
	CashedOutAt        *time.Time
}

type ParcelEventDB struct {
	ID         int64
	ParcelID   int64
	Field      string
	FromStatus string
	ToStatus   string
	Actor      string
	CreatedAt  time.Time
}
