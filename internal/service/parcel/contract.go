//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_test
package parcel

import (
	"context"

	"parcel-service/internal/entities"
	"parcel-service/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, parcelModify entities.ParcelModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Parcel, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Parcel, error)
	List(ctx context.Context, filter entities.ParcelFilter) ([]entities.Parcel, error)
	Update(ctx context.Context, parcelModify entities.ParcelModify) (*entities.Parcel, error)
	Delete(ctx context.Context, id int64) error
	CountInFlightByRider(ctx context.Context, riderID int64) (int64, error)
	AddEvent(ctx context.Context, event entities.ParcelEvent) (int64, error)
	ListEvents(ctx context.Context, parcelID int64) ([]entities.ParcelEvent, error)
}

type RiderRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Rider, error)
	Update(ctx context.Context, riderModify entities.RiderModify) (*entities.Rider, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, paymentModify entities.PaymentModify) (*entities.Payment, error)
	GetByTransactionRef(ctx context.Context, ref string) (*entities.Payment, error)
	CountByParcel(ctx context.Context, parcelID int64) (int64, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// EventPublisher announces committed status changes. Failures are logged, never returned to the caller.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event entities.ParcelEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
}
