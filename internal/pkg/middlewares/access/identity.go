package access

import (
	"context"

	"parcel-service/internal/entities"
)

type identityKey struct{}

func ContextWithIdentity(ctx context.Context, identity *entities.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the verified caller of a non-public route.
func IdentityFromContext(ctx context.Context) (*entities.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*entities.Identity)
	return identity, ok && identity != nil
}
