//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_status_patch_test
package rider_status_patch

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
	Approve(ctx context.Context, id int64) (*entities.RiderTransitionResult, error)
	Deactivate(ctx context.Context, id int64) (*entities.RiderTransitionResult, error)
}
