package user

import (
	"context"
	"errors"
	"fmt"

	"parcel-service/internal/entities"
)

const searchLimit = 10

type User struct {
	repository Repository
}

func New(repository Repository) *User {
	return &User{
		repository: repository,
	}
}

// SignIn registers the user on first sign-in. A repeated call only refreshes
// last_login_at and reports inserted=false. The role is never taken from input.
func (s *User) SignIn(ctx context.Context, userModify entities.UserModify) (*entities.User, bool, error) {
	if userModify.Email == nil {
		return nil, false, ErrMissingRequiredFields
	}

	email := normalizeEmail(*userModify.Email)
	if !isValidEmail(email) {
		return nil, false, ErrInvalidEmail
	}

	role := entities.DefaultRole
	userModify.Email = &email
	userModify.Role = &role
	userModify.ID = nil

	user, inserted, err := s.repository.Upsert(ctx, userModify)
	if err != nil {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
	return user, inserted, nil
}

func (s *User) Search(ctx context.Context, emailPart string) ([]entities.User, error) {
	emailPart = normalizeEmail(emailPart)
	if emailPart == "" {
		return nil, ErrMissingRequiredFields
	}

	users, err := s.repository.Search(ctx, emailPart, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// GetRole falls back to the default role for unknown emails.
func (s *User) GetRole(ctx context.Context, email string) (entities.UserRole, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return "", ErrInvalidEmail
	}

	user, err := s.repository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return entities.DefaultRole, nil
		}
		return "", fmt.Errorf("get user by email: %w", err)
	}
	return user.Role, nil
}

func (s *User) GrantAdmin(ctx context.Context, id int64) (*entities.User, error) {
	return s.setRole(ctx, id, entities.RoleAdmin)
}

func (s *User) RevokeAdmin(ctx context.Context, id int64) (*entities.User, error) {
	return s.setRole(ctx, id, entities.RoleUser)
}

func (s *User) setRole(ctx context.Context, id int64, role entities.UserRole) (*entities.User, error) {
	if !isValidID(id) {
		return nil, ErrInvalidUserID
	}

	user, err := s.repository.Update(ctx, entities.UserModify{
		ID:   &id,
		Role: &role,
	})
	if err != nil {
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return user, nil
}
