package payment

import "errors"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidEmail  = errors.New("invalid email")

	ErrPaymentNotFound      = errors.New("payment not found")
	ErrDuplicateTransaction = errors.New("transaction reference already recorded")
	ErrParcelNotFound       = errors.New("parcel not found")

	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
