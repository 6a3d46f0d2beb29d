package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domuser "example.com/softuni-fest/internal/domain/user"
)

type PasswordComparer interface {
	Compare(hash string, password string) error
}

// Claims is what a bearer token proves about its holder.
type Claims struct {
	UserID   string
	RoleCode domuser.RoleCode
	Email    string
	Name     string
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*domuser.User, error)
}

type Service struct {
	users   UserFinder
	checker PasswordComparer
	tokens  TokenService
}

func NewService(users UserFinder, checker PasswordComparer, tokens TokenService) *Service {
	return &Service{
		users:   users,
		checker: checker,
		tokens:  tokens,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *domuser.User
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domuser.ErrUserNotFound) {
		return nil, domuser.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	err = s.checker.Compare(u.PasswordHash, in.Password)
	if errors.Is(err, domuser.ErrInvalidCredential) {
		return nil, domuser.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  u,
	}, nil
}
