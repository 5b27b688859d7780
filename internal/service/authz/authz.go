package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-service/internal/entities"
	"parcel-service/internal/service/user"
)

type Kind string

const (
	KindAuthenticated Kind = "authenticated"
	KindAdmin         Kind = "admin"
	KindRider         Kind = "rider"
	KindSelf          Kind = "self"
)

// Requirement is one access check. Target is used by KindSelf only.
type Requirement struct {
	Kind   Kind
	Target string
}

func Authenticated() Requirement {
	return Requirement{Kind: KindAuthenticated}
}

func Admin() Requirement {
	return Requirement{Kind: KindAdmin}
}

func Rider() Requirement {
	return Requirement{Kind: KindRider}
}

func Self(target string) Requirement {
	return Requirement{Kind: KindSelf, Target: target}
}

type Gate struct {
	users UserRepository
}

func New(users UserRepository) *Gate {
	return &Gate{
		users: users,
	}
}

// Authorize never allows on a failed lookup: store errors are returned wrapped.
func (g *Gate) Authorize(ctx context.Context, identity *entities.Identity, req Requirement) error {
	if identity == nil || identity.Email == "" {
		return ErrUnauthorized
	}

	switch req.Kind {
	case KindAuthenticated:
		return nil
	case KindAdmin:
		return g.requireRole(ctx, identity.Email, entities.RoleAdmin)
	case KindRider:
		return g.requireRole(ctx, identity.Email, entities.RoleRider)
	case KindSelf:
		if !strings.EqualFold(strings.TrimSpace(req.Target), identity.Email) {
			return fmt.Errorf("%w: identity does not match %q", ErrForbidden, req.Target)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown requirement %q", ErrForbidden, req.Kind)
	}
}

// AuthorizeAll succeeds when every requirement holds.
func (g *Gate) AuthorizeAll(ctx context.Context, identity *entities.Identity, reqs ...Requirement) error {
	for _, req := range reqs {
		if err := g.Authorize(ctx, identity, req); err != nil {
			return err
		}
	}
	return nil
}

// AuthorizeAny succeeds when at least one requirement holds. The first
// unauthorized or internal error wins over forbidden ones.
func (g *Gate) AuthorizeAny(ctx context.Context, identity *entities.Identity, reqs ...Requirement) error {
	if len(reqs) == 0 {
		return ErrForbidden
	}

	var lastErr error
	for _, req := range reqs {
		err := g.Authorize(ctx, identity, req)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrForbidden) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// Role returns the caller's stored role, the default role for unknown users.
func (g *Gate) Role(ctx context.Context, identity *entities.Identity) (entities.UserRole, error) {
	if identity == nil || identity.Email == "" {
		return "", ErrUnauthorized
	}

	u, err := g.users.GetByEmail(ctx, strings.ToLower(identity.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return entities.DefaultRole, nil
		}
		return "", fmt.Errorf("get user role: %w", err)
	}
	return u.Role, nil
}

func (g *Gate) requireRole(ctx context.Context, email string, role entities.UserRole) error {
	u, err := g.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("%w: no user record", ErrForbidden)
		}
		return fmt.Errorf("get user role: %w", err)
	}

	if u.Role != role {
		return fmt.Errorf("%w: role %s required", ErrForbidden, role)
	}
	return nil
}
