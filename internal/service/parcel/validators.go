package parcel

import (
	"strings"

	"parcel-service/internal/entities"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidID(id int64) bool {
	return id > 0
}

func validateCreate(parcelModify entities.ParcelModify) error {
	if parcelModify.Title == nil || parcelModify.Type == nil || parcelModify.DeliveryCost == nil {
		return ErrMissingRequiredFields
	}
	if strings.TrimSpace(*parcelModify.Title) == "" {
		return ErrInvalidTitle
	}
	if !parcelModify.Type.IsValid() {
		return ErrInvalidParcelType
	}
	if *parcelModify.DeliveryCost < 0 {
		return ErrInvalidCost
	}
	if parcelModify.WeightKg != nil && *parcelModify.WeightKg < 0 {
		return ErrInvalidWeight
	}
	return nil
}

func validatePayment(paymentModify entities.PaymentModify) error {
	if paymentModify.ParcelID == nil || paymentModify.Amount == nil || paymentModify.PayerEmail == nil {
		return ErrMissingRequiredFields
	}
	if !isValidID(*paymentModify.ParcelID) {
		return ErrInvalidParcelID
	}
	if *paymentModify.Amount <= 0 {
		return ErrInvalidAmount
	}
	if paymentModify.TransactionRef == nil || strings.TrimSpace(*paymentModify.TransactionRef) == "" {
		return ErrMissingTransactionRef
	}
	return nil
}
