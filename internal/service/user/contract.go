//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_test
package user

import (
	"context"

	"parcel-service/internal/entities"
)

type Repository interface {
	// Upsert inserts a user or refreshes last_login_at of an existing one.
	Upsert(ctx context.Context, userModify entities.UserModify) (*entities.User, bool, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Search(ctx context.Context, emailPart string, limit uint64) ([]entities.User, error)
	Update(ctx context.Context, userModify entities.UserModify) (*entities.User, error)
}
