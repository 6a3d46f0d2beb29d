package memory

import (
	"context"
	"slices"

	domtx "example.com/softuni-fest/internal/domain/transaction"
)

type TransactionRepository struct {
	s *Store
}

func (r *TransactionRepository) Create(ctx context.Context, t *domtx.Transaction) (*domtx.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t.ID = r.s.nextTransactionID
	r.s.nextTransactionID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.s.now()
	}
	cloned := *t
	r.s.transactions = append(r.s.transactions, &cloned)
	return t, nil
}

func (r *TransactionRepository) Count(ctx context.Context, filter domtx.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, t := range r.s.transactions {
		if filter.Matches(t) {
			n++
		}
	}
	return n, nil
}

func (r *TransactionRepository) Find(ctx context.Context, filter domtx.Filter, limit, offset int) ([]*domtx.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*domtx.Transaction
	for _, t := range r.s.transactions {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}
	slices.SortFunc(matched, func(a, b *domtx.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID > b.ID {
			return -1
		}
		if a.ID < b.ID {
			return 1
		}
		return 0
	})

	page := window(matched, limit, offset)
	out := make([]*domtx.Transaction, 0, len(page))
	for _, t := range page {
		cloned := *t
		out = append(out, &cloned)
	}
	return out, nil
}
