package service

import (
	"context"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)
	FindByProjectID(ctx context.Context, projectID string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, userID, projectID string, upd domain.ProjectUpdate) (*domain.Project, error)
	ApplyConfig(ctx context.Context, projectID, name, theme, visual string, raw []byte) error
}

type ScreenStore interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Screen, error)
	Get(ctx context.Context, projectID, screenID string) (*domain.Screen, error)
	Insert(ctx context.Context, s *domain.Screen) error
	UpdateCode(ctx context.Context, projectID, screenID, code string) error
	Delete(ctx context.Context, projectID, screenID string) error
	ListMissingCode(ctx context.Context, limit int) ([]domain.ScreenRef, error)
}

type RunStore interface {
	Start(ctx context.Context, run *domain.Run) error
	Get(ctx context.Context, projectID string) (*domain.Run, error)
	Update(ctx context.Context, run *domain.Run) error
	Watch(ctx context.Context, projectID string) (<-chan *domain.Run, func(), error)
}

// ScreenshotStore matches objects.ScreenshotStore.
type ScreenshotStore interface {
	PutScreenshot(ctx context.Context, userID, projectID string, data []byte) (string, error)
}

// CreditSpender is satisfied by the users service.
type CreditSpender interface {
	ConsumeCredit(ctx context.Context, email string) error
}
