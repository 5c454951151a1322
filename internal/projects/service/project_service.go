package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/screenforge/screenforge-backend/internal/export"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
	"github.com/screenforge/screenforge-backend/internal/themes"
)

// ProjectService handles project and screen bookkeeping
type ProjectService struct {
	projects    ProjectStore
	screens     ScreenStore
	screenshots ScreenshotStore
}

func NewProjectService(projects ProjectStore, screens ScreenStore, screenshots ScreenshotStore) *ProjectService {
	return &ProjectService{projects: projects, screens: screens, screenshots: screenshots}
}

type CreateInput struct {
	ProjectID string
	UserInput string
	Device    string
}

// Create stores a new project with the placeholder name and no theme.
func (s *ProjectService) Create(ctx context.Context, userID string, in CreateInput) (*domain.Project, error) {
	in.UserInput = strings.TrimSpace(in.UserInput)
	in.Device = strings.TrimSpace(in.Device)
	if userID == "" || in.UserInput == "" || in.Device == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidDevice(in.Device) {
		return nil, domain.ErrInvalidDevice
	}
	if utf8.RuneCountInString(in.UserInput) > domain.MaxUserInputLength {
		return nil, domain.ErrUserInputTooLong
	}

	projectID := strings.TrimSpace(in.ProjectID)
	if projectID == "" {
		projectID = uuid.NewString()
	}

	p := &domain.Project{
		ProjectID:   projectID,
		UserID:      userID,
		UserInput:   in.UserInput,
		Device:      in.Device,
		ProjectName: domain.PlaceholderName,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the project with its screens in insertion order.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	p, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	screens, err := s.screens.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	p.Screens = screens
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// Update changes only the provided fields. A theme must be a known palette name or empty.
func (s *ProjectService) Update(ctx context.Context, userID, projectID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	if upd.Theme != nil && !themes.Valid(*upd.Theme) {
		return nil, domain.ErrInvalidTheme
	}
	if upd.ProjectName != nil {
		name := strings.TrimSpace(*upd.ProjectName)
		if name == "" {
			return nil, domain.ErrMissingFields
		}
		upd.ProjectName = &name
	}
	return s.projects.Update(ctx, userID, projectID, upd)
}

// UploadScreenshot stores the PNG and records its URL on the project.
func (s *ProjectService) UploadScreenshot(ctx context.Context, userID, projectID string, data []byte) (*domain.Project, error) {
	if len(data) == 0 {
		return nil, domain.ErrMissingFields
	}
	if _, err := s.projects.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}

	url, err := s.screenshots.PutScreenshot(ctx, userID, projectID, data)
	if err != nil {
		return nil, fmt.Errorf("store screenshot: %w", err)
	}
	return s.projects.Update(ctx, userID, projectID, domain.ProjectUpdate{Screenshot: &url})
}

// DeleteScreen removes the screen row. A screen that does not exist is not an error.
func (s *ProjectService) DeleteScreen(ctx context.Context, userID, projectID, screenID string) error {
	if projectID == "" || screenID == "" {
		return domain.ErrMissingFields
	}
	if _, err := s.projects.Get(ctx, userID, projectID); err != nil {
		return err
	}
	return s.screens.Delete(ctx, projectID, screenID)
}

type ExportedScreen struct {
	Filename string
	HTML     string
}

// ExportScreen renders the screen as a standalone document themed with the project palette.
func (s *ProjectService) ExportScreen(ctx context.Context, userID, projectID, screenID string) (*ExportedScreen, error) {
	p, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	sc, err := s.screens.Get(ctx, projectID, screenID)
	if err != nil {
		return nil, err
	}

	code := ""
	if sc.Code != nil {
		code = *sc.Code
	}
	return &ExportedScreen{
		Filename: export.Filename(sc.ScreenName),
		HTML:     export.Document(sc.ScreenName, code, p.Theme),
	}, nil
}
