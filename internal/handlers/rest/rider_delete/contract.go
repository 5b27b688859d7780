//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_delete_test
package rider_delete

import (
	"context"

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
	Reject(ctx context.Context, id int64) error
}
