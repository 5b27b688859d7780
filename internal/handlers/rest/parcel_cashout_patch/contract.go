//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_cashout_patch_test
package parcel_cashout_patch

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
	Cashout(ctx context.Context, parcelID int64, actor string) (*entities.Parcel, error)
}
