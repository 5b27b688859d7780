package rate_limiter

import "parcel-service/pkg/logger"

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rate_limiter_test

// Limiter keeps a separate allowance per key.
type Limiter interface {
	Allow(key string) bool
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
