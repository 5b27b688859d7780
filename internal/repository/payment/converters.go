package payment

import (
	"parcel-service/internal/entities"
)

func ToDomain(p *PaymentDB) *entities.Payment {
	if p == nil {
		return nil
	}

	return &entities.Payment{
		ID:             p.ID,
		ParcelID:       p.ParcelID,
		PayerEmail:     p.PayerEmail,
		Amount:         p.Amount,
		Method:         p.Method,
		TransactionRef: p.TransactionRef,
		PaidAt:         p.PaidAt,
	}
}

func FromDomainModify(paymentModify *entities.PaymentModify) *PaymentModifyDB {
	if paymentModify == nil {
		return nil
	}

	return &PaymentModifyDB{
		ParcelID:       paymentModify.ParcelID,
		PayerEmail:     paymentModify.PayerEmail,
		Amount:         paymentModify.Amount,
		Method:         paymentModify.Method,
		TransactionRef: paymentModify.TransactionRef,
	}
}

func ToDomainList(paymentsDB []PaymentDB) []entities.Payment {
	if len(paymentsDB) == 0 {
		return []entities.Payment{}
	}

	result := make([]entities.Payment, len(paymentsDB))
	for i, paymentDB := range paymentsDB {
		result[i] = *ToDomain(&paymentDB)
	}
	return result
}
