//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_admin_patch_test
package user_admin_patch

import (
	"context"

	"parcel-service/internal/entities"
	"parcel-service/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GrantAdmin(ctx context.Context, id int64) (*entities.User, error)
	RevokeAdmin(ctx context.Context, id int64) (*entities.User, error)
}
