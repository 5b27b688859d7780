package user

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidRole           = errors.New("invalid role")

	ErrUserNotFound = errors.New("user not found")
	ErrConflict     = errors.New("resource already exists")
)
