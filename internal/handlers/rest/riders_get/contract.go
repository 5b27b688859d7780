//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=riders_get_test
package riders_get

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
	ListPending(ctx context.Context) ([]entities.Rider, error)
	ListActive(ctx context.Context, nameFilter string) ([]entities.Rider, error)
	ListByDistrict(ctx context.Context, district string) ([]entities.Rider, error)
}
