package identity

import "errors"

var (
	ErrInvalidMode   = errors.New("invalid mode")
	ErrBlocked       = errors.New("blocked")
	ErrUnknownUser   = errors.New("no such user")
	ErrUnknownGroup  = errors.New("no such group")
	ErrUserExists    = errors.New("user already exists")
	ErrInvalidName   = errors.New("invalid name")
	ErrProtectedUser = errors.New("cannot remove protected user")
)
