package dto

import "parcel-service/internal/entities"

type UserCreate struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

type ParcelCreate struct {
	Title            string   `json:"title"`
	Type             string   `json:"type"`
	WeightKg         *float64 `json:"weight_kg"`
	SenderName       string   `json:"sender_name"`
	SenderDistrict   string   `json:"sender_district"`
	ReceiverName     string   `json:"receiver_name"`
	ReceiverDistrict string   `json:"receiver_district"`
	ReceiverAddress  string   `json:"receiver_address"`
	DeliveryCost     *int64   `json:"delivery_cost"`
}

type DeliveryStatusUpdate struct {
	Status string `json:"status"`
}

type RiderAssign struct {
	RiderID int64 `json:"rider_id"`
}

type PaymentCreate struct {
	ParcelID      int64  `json:"parcel_id"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

type PaymentIntentCreate struct {
	Amount int64 `json:"amount"`
}

type RiderCreate struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Region           string `json:"region"`
	District         string `json:"district"`
	BikeRegistration string `json:"bike_registration"`
}

func ToUserModify(u UserCreate) entities.UserModify {
	return entities.UserModify{
		Email:    &u.Email,
		Name:     &u.Name,
		PhotoURL: &u.PhotoURL,
	}
}

func ToParcelModify(p ParcelCreate) entities.ParcelModify {
	parcelType := entities.ParcelType(p.Type)
	return entities.ParcelModify{
		Title:            &p.Title,
		Type:             &parcelType,
		WeightKg:         p.WeightKg,
		SenderName:       &p.SenderName,
		SenderDistrict:   &p.SenderDistrict,
		ReceiverName:     &p.ReceiverName,
		ReceiverDistrict: &p.ReceiverDistrict,
		ReceiverAddress:  &p.ReceiverAddress,
		DeliveryCost:     p.DeliveryCost,
	}
}

func ToPaymentModify(p PaymentCreate, payer string) entities.PaymentModify {
	return entities.PaymentModify{
		ParcelID:       &p.ParcelID,
		PayerEmail:     &payer,
		Amount:         &p.Amount,
		Method:         &p.Method,
		TransactionRef: &p.TransactionID,
	}
}

func ToRiderModify(r RiderCreate, email string) entities.RiderModify {
	return entities.RiderModify{
		Name:             &r.Name,
		Email:            &email,
		Phone:            &r.Phone,
		Region:           &r.Region,
		District:         &r.District,
		BikeRegistration: &r.BikeRegistration,
	}
}
