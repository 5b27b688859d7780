//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_test
package rider

import (
	"context"

	"parcel-service/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, riderModify entities.RiderModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Rider, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Rider, error)
	List(ctx context.Context, filter entities.RiderFilter) ([]entities.Rider, error)
	Update(ctx context.Context, riderModify entities.RiderModify) (*entities.Rider, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, userModify entities.UserModify) (*entities.User, error)
}

type ParcelRepository interface {
	List(ctx context.Context, filter entities.ParcelFilter) ([]entities.Parcel, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
