package model

import "errors"

var (
	ErrNotFound           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrInvalidReference   = errors.New("models: referenced record does not exist")
	ErrDuplicate          = errors.New("models: duplicate record")
	ErrInvalidSession     = errors.New("session: invalid token")
	ErrSessionExpired     = errors.New("session: expired")
)
