//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_assign_rider_patch_test
package parcel_assign_rider_patch

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
	AssignRider(ctx context.Context, parcelID, riderID int64, actor string) (*entities.AssignmentResult, error)
}
