package entities

import "time"

type Parcel struct {
	ID               int64
	CreatedBy        string
	Title            string
	Type             ParcelType
	WeightKg         *float64
	SenderName       string
	SenderDistrict   string
	ReceiverName     string
	ReceiverDistrict string
	ReceiverAddress  string
	DeliveryCost     int64
	PaymentStatus    PaymentStatus
	DeliveryStatus   DeliveryStatus
	CashoutStatus    CashoutStatus
	AssignedRider    *AssignedRider
	AssignedAt       *time.Time
	PickedAt         *time.Time
	DeliveredAt      *time.Time
	CashedOutAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AssignedRider is the rider snapshot stored on the parcel at assignment time.
type AssignedRider struct {
	ID    int64
	Name  string
	Email string
}

type ParcelType string

const (
	ParcelDocument    ParcelType = "document"
	ParcelNonDocument ParcelType = "non-document"
)

func (t ParcelType) String() string {
	return string(t)
}

func (t ParcelType) IsValid() bool {
	return t == ParcelDocument || t == ParcelNonDocument
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

type DeliveryStatus string

const (
	DeliveryPending                DeliveryStatus = "pending"
	DeliveryAssigned               DeliveryStatus = "assigned"
	DeliveryInTransit              DeliveryStatus = "in_transit"
	DeliveryDelivered              DeliveryStatus = "delivered"
	DeliveryServiceCenterDelivered DeliveryStatus = "service_center_delivered"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the parcel left the rider's hands.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryServiceCenterDelivered
}

// InFlightStatuses are the statuses that keep a rider busy.
var InFlightStatuses = []DeliveryStatus{DeliveryAssigned, DeliveryInTransit}

var CompletedStatuses = []DeliveryStatus{DeliveryDelivered, DeliveryServiceCenterDelivered}

type CashoutStatus string

const (
	CashoutNone      CashoutStatus = "none"
	CashoutCashedOut CashoutStatus = "cashed_out"
)

func (s CashoutStatus) String() string {
	return string(s)
}

type ParcelModify struct {
	ID               *int64
	CreatedBy        *string
	Title            *string
	Type             *ParcelType
	WeightKg         *float64
	SenderName       *string
	SenderDistrict   *string
	ReceiverName     *string
	ReceiverDistrict *string
	ReceiverAddress  *string
	DeliveryCost     *int64
	PaymentStatus    *PaymentStatus
	DeliveryStatus   *DeliveryStatus
	CashoutStatus    *CashoutStatus
	AssignedRider    *AssignedRider
	AssignedAt       *time.Time
	PickedAt         *time.Time
	DeliveredAt      *time.Time
	CashedOutAt      *time.Time
}

type ParcelFilter struct {
	CreatedBy      *string
	AssignedEmail  *string
	PaymentStatus  *PaymentStatus
	DeliveryStatus []DeliveryStatus
	// OldestFirst flips the default newest-first ordering.
	OldestFirst bool
}

// AssignmentResult tells which writes an assignment applied.
type AssignmentResult struct {
	Parcel        Parcel
	ParcelUpdated bool
	RiderUpdated  bool
}
