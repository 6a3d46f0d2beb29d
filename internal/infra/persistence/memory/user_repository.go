package memory

import (
	"context"
	"strings"

	domuser "example.com/softuni-fest/internal/domain/user"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, domuser.ErrEmailAlreadyUsed
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now()
	}
	cloned := *u
	r.s.users[u.ID] = &cloned
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domuser.ErrUserNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}
