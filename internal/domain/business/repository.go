package business

import "context"

type Repository interface {
	Create(ctx context.Context, b *Business) (*Business, error)
	GetByID(ctx context.Context, id int64) (*Business, error)
	GetByUserID(ctx context.Context, userID string) (*Business, error)
}
