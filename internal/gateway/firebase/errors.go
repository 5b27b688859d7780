package firebase

import "errors"

var (
	ErrEmptyToken   = errors.New("empty id token")
	ErrInvalidToken = errors.New("invalid id token")
	ErrMissingEmail = errors.New("id token has no email claim")
)
