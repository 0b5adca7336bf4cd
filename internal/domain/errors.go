package domain

import "errors"

var (
	ErrNotFound           = errors.New("message not found")
	ErrInvalidID          = errors.New("invalid message id")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
