package entities

import "time"

const DefaultPaymentMethod = "card-gateway"

type Payment struct {
	ID             int64
	ParcelID       int64
	PayerEmail     string
	Amount         int64
	Method         string
	TransactionRef string
	PaidAt         time.Time
}

type PaymentModify struct {
	ParcelID       *int64
	PayerEmail     *string
	Amount         *int64
	Method         *string
	TransactionRef *string
}

// PaymentResult tells which writes a payment request applied.
type PaymentResult struct {
	Payment          Payment
	PaymentRecorded  bool
	ParcelMarkedPaid bool
	AlreadyRecorded  bool
}

// PaymentIntent is the client-usable token produced by the payment gateway.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}
