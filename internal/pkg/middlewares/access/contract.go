//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=access_test
package access

import (
	"context"

	"parcel-service/internal/entities"
	"parcel-service/internal/service/authz"
	"parcel-service/pkg/logger"
)

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*entities.Identity, error)
}

type Gate interface {
	AuthorizeAll(ctx context.Context, identity *entities.Identity, reqs ...authz.Requirement) error
	AuthorizeAny(ctx context.Context, identity *entities.Identity, reqs ...authz.Requirement) error
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
