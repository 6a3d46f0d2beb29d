package business

import "errors"

var (
	ErrBusinessNotFound      = errors.New("business not found")
	ErrBusinessAlreadyExists = errors.New("user already has a business")
	ErrInvalidName           = errors.New("business name is required")
)
