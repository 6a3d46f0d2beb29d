package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingImage    = errors.New("there isn't an attached image")
	ErrInvalidName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must be >= 0")
	ErrInvalidSortKey  = errors.New("invalid product sort key")
)
