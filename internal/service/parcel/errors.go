package parcel

import (
	"errors"

	"parcel-service/internal/service/payment"
	"parcel-service/internal/service/rider"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrMissingCreator        = errors.New("creator identity is required")
	ErrInvalidParcelID       = errors.New("invalid parcel id")
	ErrInvalidRiderID        = errors.New("invalid rider id")
	ErrInvalidTitle          = errors.New("invalid title")
	ErrInvalidParcelType     = errors.New("invalid parcel type")
	ErrInvalidCost           = errors.New("invalid delivery cost")
	ErrInvalidWeight         = errors.New("invalid weight")
	ErrInvalidStatus         = errors.New("unknown delivery status")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrMissingTransactionRef = errors.New("transaction reference is required")

	ErrParcelNotFound    = payment.ErrParcelNotFound
	ErrParcelNotPaid     = errors.New("parcel is not paid")
	ErrRiderNotActive    = errors.New("rider is not active")
	ErrNotAssignedRider  = errors.New("parcel is assigned to another rider")
	ErrForbidden         = errors.New("not allowed to modify this parcel")
	ErrParcelHasPayments = errors.New("parcel has recorded payments")
	ErrPaymentConflict   = errors.New("transaction reference belongs to another parcel")

	ErrRiderNotFound = rider.ErrRiderNotFound
	// payment repository sentinels surface through RecordPayment
	errDuplicateTransaction = payment.ErrDuplicateTransaction
	errPaymentNotFound      = payment.ErrPaymentNotFound
)
