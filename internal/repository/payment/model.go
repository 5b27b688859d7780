package payment

import "time"

type PaymentDB struct {
	ID             int64
	ParcelID       int64
	PayerEmail     string
	Amount         int64
	Method         string
	TransactionRef string
	PaidAt         time.Time
}

type PaymentModifyDB struct {
	ParcelID       *int64
	PayerEmail     *string
	Amount         *int64
	Method         *string
	TransactionRef *string
}
