//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=users_search_get_test
package users_search_get

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
	Search(ctx context.Context, emailPart string) ([]entities.User, error)
}
