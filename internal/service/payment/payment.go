package payment

import (
	"context"
	"fmt"
	"strings"

	"parcel-service/internal/entities"
)

const reconcileBatch = 100

// ReconcileActor is recorded as the actor of events written by reconciliation.
const ReconcileActor = "system:payment-reconcile"

type Payment struct {
	repository Repository
	parcels    ParcelRepository
	gateway    Gateway
	txManager  TxManager
}

func New(repository Repository, parcels ParcelRepository, gateway Gateway, txManager TxManager) *Payment {
	return &Payment{
		repository: repository,
		parcels:    parcels,
		gateway:    gateway,
		txManager:  txManager,
	}
}

func (s *Payment) History(ctx context.Context, email string) ([]entities.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	payments, err := s.repository.ListByPayer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *Payment) CreateIntent(ctx context.Context, amount int64) (*entities.PaymentIntent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	intent, err := s.gateway.CreateIntent(ctx, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	return intent, nil
}

// Reconcile marks parcels paid when a payment exists but the parcel is still
// unpaid. Such rows come from writes made before payments became transactional.
// Returns the number of repaired parcels.
func (s *Payment) Reconcile(ctx context.Context) (int, error) {
	ids, err := s.parcels.ListFundedUnpaid(ctx, reconcileBatch)
	if err != nil {
		return 0, fmt.Errorf("list funded unpaid parcels: %w", err)
	}

	repaired := 0
	for _, id := range ids {
		fixed, err := s.markPaid(ctx, id)
		if err != nil {
			return repaired, fmt.Errorf("reconcile parcel %d: %w", id, err)
		}
		if fixed {
			repaired++
		}
	}
	return repaired, nil
}

func (s *Payment) markPaid(ctx context.Context, parcelID int64) (bool, error) {
	fixed := false
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		parcel, err := s.parcels.GetByIDForUpdate(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}
		if parcel.PaymentStatus == entities.PaymentPaid {
			return nil
		}

		paid := entities.PaymentPaid
		_, err = s.parcels.Update(ctx, entities.ParcelModify{
			ID:            &parcelID,
			PaymentStatus: &paid,
		})
		if err != nil {
			return fmt.Errorf("mark parcel paid: %w", err)
		}

		_, err = s.parcels.AddEvent(ctx, entities.ParcelEvent{
			ParcelID:   parcelID,
			Field:      entities.EventFieldPayment,
			FromStatus: parcel.PaymentStatus.String(),
			ToStatus:   paid.String(),
			Actor:      ReconcileActor,
		})
		if err != nil {
			return fmt.Errorf("add payment event: %w", err)
		}

		fixed = true
		return nil
	})
	return fixed, err
}
