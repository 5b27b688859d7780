// Package dto holds the JSON shapes of the REST API.
package dto

import (
	"time"

	"parcel-service/internal/entities"
)

type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photo_url"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

type AssignedRider struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Parcel struct {
	ID               int64          `json:"id"`
	CreatedBy        string         `json:"created_by"`
	Title            string         `json:"title"`
	Type             string         `json:"type"`
	WeightKg         *float64       `json:"weight_kg,omitempty"`
	SenderName       string         `json:"sender_name"`
	SenderDistrict   string         `json:"sender_district"`
	ReceiverName     string         `json:"receiver_name"`
	ReceiverDistrict string         `json:"receiver_district"`
	ReceiverAddress  string         `json:"receiver_address"`
	DeliveryCost     int64          `json:"delivery_cost"`
	PaymentStatus    string         `json:"payment_status"`
	DeliveryStatus   string         `json:"delivery_status"`
	CashoutStatus    string         `json:"cashout_status"`
	AssignedRider    *AssignedRider `json:"assigned_rider,omitempty"`
	AssignedAt       *time.Time     `json:"assigned_at,omitempty"`
	PickedAt         *time.Time     `json:"picked_at,omitempty"`
	DeliveredAt      *time.Time     `json:"delivered_at,omitempty"`
	CashedOutAt      *time.Time     `json:"cashed_out_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type ParcelEvent struct {
	ID        int64     `json:"id"`
	ParcelID  int64     `json:"parcel_id"`
	Field     string    `json:"field"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

type Rider struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Region           string    `json:"region"`
	District         string    `json:"district"`
	BikeRegistration string    `json:"bike_registration"`
	Status           string    `json:"status"`
	WorkStatus       string    `json:"work_status"`
	CreatedAt        time.Time `json:"created_at"`
}

type Payment struct {
	ID            int64     `json:"id"`
	ParcelID      int64     `json:"parcel_id"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

func FromUser(u *entities.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role.String(),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func FromUsers(users []entities.User) []User {
	result := make([]User, len(users))
	for i := range users {
		result[i] = FromUser(&users[i])
	}
	return result
}

func FromParcel(p *entities.Parcel) Parcel {
	parcel := Parcel{
		ID:               p.ID,
		CreatedBy:        p.CreatedBy,
		Title:            p.Title,
		Type:             p.Type.String(),
		WeightKg:         p.WeightKg,
		SenderName:       p.SenderName,
		SenderDistrict:   p.SenderDistrict,
		ReceiverName:     p.ReceiverName,
		ReceiverDistrict: p.ReceiverDistrict,
		ReceiverAddress:  p.ReceiverAddress,
		DeliveryCost:     p.DeliveryCost,
		PaymentStatus:    p.PaymentStatus.String(),
		DeliveryStatus:   p.DeliveryStatus.String(),
		CashoutStatus:    p.CashoutStatus.String(),
		AssignedAt:       p.AssignedAt,
		PickedAt:         p.PickedAt,
		DeliveredAt:      p.DeliveredAt,
		CashedOutAt:      p.CashedOutAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.AssignedRider != nil {
		parcel.AssignedRider = &AssignedRider{
			ID:    p.AssignedRider.ID,
			Name:  p.AssignedRider.Name,
			Email: p.AssignedRider.Email,
		}
	}
	return parcel
}

func FromParcels(parcels []entities.Parcel) []Parcel {
	result := make([]Parcel, len(parcels))
	for i := range parcels {
		result[i] = FromParcel(&parcels[i])
	}
	return result
}

func FromParcelEvents(events []entities.ParcelEvent) []ParcelEvent {
	result := make([]ParcelEvent, len(events))
	for i, e := range events {
		result[i] = ParcelEvent{
			ID:        e.ID,
			ParcelID:  e.ParcelID,
			Field:     e.Field.String(),
			From:      e.FromStatus,
			To:        e.ToStatus,
			Actor:     e.Actor,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}

func FromRider(r *entities.Rider) Rider {
	return Rider{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Region:           r.Region,
		District:         r.District,
		BikeRegistration: r.BikeRegistration,
		Status:           r.Status.String(),
		WorkStatus:       r.WorkStatus.String(),
		CreatedAt:        r.CreatedAt,
	}
}

func FromRiders(riders []entities.Rider) []Rider {
	result := make([]Rider, len(riders))
	for i := range riders {
		result[i] = FromRider(&riders[i])
	}
	return result
}

func FromPayment(p *entities.Payment) Payment {
	return Payment{
		ID:            p.ID,
		ParcelID:      p.ParcelID,
		Email:         p.PayerEmail,
		Amount:        p.Amount,
		Method:        p.Method,
		TransactionID: p.TransactionRef,
		PaidAt:        p.PaidAt,
	}
}

func FromPayments(payments []entities.Payment) []Payment {
	result := make([]Payment, len(payments))
	for i := range payments {
		result[i] = FromPayment(&payments[i])
	}
	return result
}
