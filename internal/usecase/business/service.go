package business

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	domuser "example.com/softuni-fest/internal/domain/user"
)

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*domuser.User, error)
}

type Service struct {
	repo   dombusiness.Repository
	users  UserFinder
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo dombusiness.Repository, users UserFinder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, users: users, logger: logger, now: time.Now}
}

type RegisterInput struct {
	Name        string
	Description string
}

// Register creates the caller's business. Only BUSINESS users may own one and
// each owns at most one.
func (s *Service) Register(ctx context.Context, userID string, in RegisterInput) (*dombusiness.Business, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.CanOwnBusiness() {
		return nil, domuser.ErrUnauthorized
	}

	_, err = s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, dombusiness.ErrBusinessAlreadyExists
	case !errors.Is(err, dombusiness.ErrBusinessNotFound):
		return nil, err
	}

	b := &dombusiness.Business{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.now().UTC(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "registered business", "business_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dombusiness.Business, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUser(ctx context.Context, userID string) (*dombusiness.Business, error) {
	return s.repo.GetByUserID(ctx, userID)
}
