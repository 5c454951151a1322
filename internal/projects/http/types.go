package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/projects/domain"
	"github.com/screenforge/screenforge-backend/internal/projects/service"
)

type ProjectService interface {
	Create(ctx context.Context, userID string, in service.CreateInput) (*domain.Project, error)
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, userID, projectID string, upd domain.ProjectUpdate) (*domain.Project, error)
	UploadScreenshot(ctx context.Context, userID, projectID string, data []byte) (*domain.Project, error)
	DeleteScreen(ctx context.Context, userID, projectID, screenID string) error
	ExportScreen(ctx context.Context, userID, projectID, screenID string) (*service.ExportedScreen, error)
}

type GenerationService interface {
	GenerateConfig(ctx context.Context, userID string, in service.ConfigInput) (*domain.GeneratedConfig, error)
	GenerateScreenUI(ctx context.Context, userID string, in service.ScreenInput) (string, error)
	EditScreen(ctx context.Context, userID string, in service.EditInput) (string, error)
	AddScreen(ctx context.Context, userID, projectID, prompt string) (*domain.Screen, error)
}

type RunService interface {
	Start(ctx context.Context, userID, projectID string) (*domain.Run, error)
	Get(ctx context.Context, userID, projectID string) (*domain.Run, error)
	Watch(ctx context.Context, userID, projectID string) (*domain.Run, <-chan *domain.Run, func(), error)
}

// Handler bundles the dependencies for project, screen and generation endpoints.
type Handler struct {
	projects ProjectService
	gen      GenerationService
	runs     RunService

	// aiLimit guards the endpoints that call the model; nil disables it.
	aiLimit gin.HandlerFunc
}

func New(projects ProjectService, gen GenerationService, runs RunService, aiLimit gin.HandlerFunc) *Handler {
	return &Handler{projects: projects, gen: gen, runs: runs, aiLimit: aiLimit}
}

type createReq struct {
	ProjectID string `json:"project_id"`
	UserInput string `json:"user_input"`
	Device    string `json:"device"`
}

type updateReq struct {
	ProjectName *string `json:"project_name"`
	Theme       *string `json:"theme"`
	Screenshot  *string `json:"screenshot"`
}

type configReq struct {
	UserInput         string `json:"user_input"`
	DeviceType        string `json:"device_type"`
	Theme             string `json:"theme"`
	VisualDescription string `json:"project_visual_description"`
}

type screenUIReq struct {
	ScreenName        string `json:"screen_name"`
	Purpose           string `json:"purpose"`
	Description       string `json:"screen_description"`
	DeviceType        string `json:"device_type"`
	VisualDescription string `json:"project_visual_description"`
}

type editReq struct {
	UserInput   string `json:"user_input"`
	CurrentCode string `json:"current_code"`
}

type addScreenReq struct {
	Prompt string `json:"prompt"`
}
