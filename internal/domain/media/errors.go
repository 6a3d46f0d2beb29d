package media

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileNotFound    = errors.New("file not found")
)
