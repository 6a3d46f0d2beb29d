package media

import (
	"context"
	"io"
	"strings"
)

// Image is an uploaded file payload.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Extension returns the file extension for the image content type.
func (i *Image) Extension() (string, error) {
	ct := strings.ToLower(strings.TrimSpace(i.ContentType))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	ext, ok := extensions[ct]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

// Store persists product images and hands back the path they are served from.
type Store interface {
	SaveFile(ctx context.Context, img *Image) (string, error)
	DeleteFile(ctx context.Context, path string) error
}
