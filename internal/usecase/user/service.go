package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	dom "example.com/softuni-fest/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo   dom.Repository
	hasher PasswordHasher
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo dom.Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, hasher: hasher, logger: logger, now: time.Now}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleCode string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*dom.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, dom.ErrInvalidCredential
	}

	role := dom.RoleCodeClient
	if in.RoleCode != "" {
		parsed, err := dom.ParseRoleCode(in.RoleCode)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, &dom.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		RoleCode:     role,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "registered user", "user_id", u.ID, "role", u.RoleCode)
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*dom.User, error) {
	return s.repo.GetByID(ctx, id)
}
