package transaction

import "context"

// Repository lists transactions newest first.
type Repository interface {
	Create(ctx context.Context, t *Transaction) (*Transaction, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, filter Filter, limit, offset int) ([]*Transaction, error)
}
