package rider

import (
	"errors"

	"parcel-service/internal/service/user"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidRiderID        = errors.New("invalid rider id")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidDistrict       = errors.New("invalid district")

	ErrRiderNotFound = errors.New("rider not found")
	ErrConflict      = errors.New("rider application already exists")

	// ErrUserNotFound is returned when a rider has no linked user record.
	ErrUserNotFound = user.ErrUserNotFound
)
