//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_test
package payment

import (
	"context"

	"parcel-service/internal/entities"
)

type Repository interface {
	ListByPayer(ctx context.Context, email string) ([]entities.Payment, error)
}

type ParcelRepository interface {
	// ListFundedUnpaid returns ids of unpaid parcels that already have a payment.
	ListFundedUnpaid(ctx context.Context, limit uint64) ([]int64, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Parcel, error)
	Update(ctx context.Context, parcelModify entities.ParcelModify) (*entities.Parcel, error)
	AddEvent(ctx context.Context, event entities.ParcelEvent) (int64, error)
}

type Gateway interface {
	CreateIntent(ctx context.Context, amount int64) (*entities.PaymentIntent, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
