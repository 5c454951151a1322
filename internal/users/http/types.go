package http

import (
	"context"

	"github.com/screenforge/screenforge-backend/internal/users/domain"
)

type Service interface {
	EnsureUser(ctx context.Context, name, email string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

type ensureReq struct {
	Name string `json:"name"`
}
