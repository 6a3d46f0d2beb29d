package memory

import (
	"context"

	dombusiness "example.com/softuni-fest/internal/domain/business"
)

type BusinessRepository struct {
	s *Store
}

func (r *BusinessRepository) Create(ctx context.Context, b *dombusiness.Business) (*dombusiness.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.businesses {
		if existing.UserID == b.UserID {
			return nil, dombusiness.ErrBusinessAlreadyExists
		}
	}
	b.ID = r.s.nextBusinessID
	r.s.nextBusinessID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.s.now()
	}
	cloned := *b
	r.s.businesses[b.ID] = &cloned
	return b, nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*dombusiness.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.businesses[id]
	if !ok {
		return nil, dombusiness.ErrBusinessNotFound
	}
	cloned := *b
	return &cloned, nil
}

func (r *BusinessRepository) GetByUserID(ctx context.Context, userID string) (*dombusiness.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.businesses {
		if b.UserID == userID {
			cloned := *b
			return &cloned, nil
		}
	}
	return nil, dombusiness.ErrBusinessNotFound
}
