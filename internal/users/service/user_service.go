package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/screenforge/screenforge-backend/internal/users/domain"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, name, email string) (*domain.User, error)
	DecrementCredits(ctx context.Context, email string) (int, error)
}

type UserService struct {
	repo           Repository
	enforceCredits bool
}

func NewUserService(repo Repository, enforceCredits bool) *UserService {
	return &UserService{repo: repo, enforceCredits: enforceCredits}
}

// EnsureUser returns the user for email, creating it on first sight.
func (s *UserService) EnsureUser(ctx context.Context, name, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u, err = s.repo.Create(ctx, strings.TrimSpace(name), email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	return s.repo.GetByEmail(ctx, email)
}

// ConsumeCredit takes one credit from the user. It is a no-op unless enforcement is on.
func (s *UserService) ConsumeCredit(ctx context.Context, email string) error {
	if !s.enforceCredits {
		return nil
	}
	if _, err := s.repo.DecrementCredits(ctx, email); err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			return err
		}
		return fmt.Errorf("consume credit: %w", err)
	}
	return nil
}
