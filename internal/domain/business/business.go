package business

import (
	"strings"
	"time"
)

// Business is the vendor entity a user sells products through. A user owns at most one.
type Business struct {
	ID          int64
	UserID      string
	Name        string
	Description string
	CreatedAt   time.Time
}

func (b *Business) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
