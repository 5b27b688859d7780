//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_succeeded_test
package payment_succeeded

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
	RecordPayment(ctx context.Context, paymentModify entities.PaymentModify) (*entities.PaymentResult, error)
}
