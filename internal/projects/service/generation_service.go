package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/screenforge/screenforge-backend/internal/llm"
	"github.com/screenforge/screenforge-backend/internal/logging"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
	"github.com/screenforge/screenforge-backend/internal/prompts"
	"github.com/screenforge/screenforge-backend/internal/themes"
)

const addedScreenNameLength = 30

// Models names the chat model used for each kind of call.
type Models struct {
	Config string
	Screen string
	Edit   string
}

// GenerationService turns prompts into project configurations and screen markup.
type GenerationService struct {
	projects ProjectStore
	screens  ScreenStore
	llm      llm.Completer
	models   Models
	credits  CreditSpender
}

func NewGenerationService(projects ProjectStore, screens ScreenStore, completer llm.Completer, models Models, credits CreditSpender) *GenerationService {
	return &GenerationService{
		projects: projects,
		screens:  screens,
		llm:      completer,
		models:   models,
		credits:  credits,
	}
}

type ConfigInput struct {
	ProjectID         string
	UserInput         string
	DeviceType        string
	Theme             string
	VisualDescription string
}

// GenerateConfig asks the model for a project configuration, applies it to the project
// and inserts one screen row per configured screen. Caller-supplied theme and visual
// description take precedence over the model's choice.
func (s *GenerationService) GenerateConfig(ctx context.Context, userID string, in ConfigInput) (*domain.GeneratedConfig, error) {
	if in.ProjectID == "" {
		return nil, domain.ErrMissingFields
	}
	p, err := s.projects.Get(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, err
	}

	userInput := firstNonEmpty(in.UserInput, p.UserInput)
	device := firstNonEmpty(in.DeviceType, p.Device)
	if userInput == "" || device == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidDevice(device) {
		return nil, domain.ErrInvalidDevice
	}
	if !themes.Valid(in.Theme) {
		return nil, domain.ErrInvalidTheme
	}

	raw, err := s.llm.Complete(ctx, s.models.Config, prompts.Config(device), userInput)
	if err != nil {
		return nil, fmt.Errorf("generate config: %w", err)
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, err
	}

	// charged only for a usable configuration
	if err := s.credits.ConsumeCredit(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.screens.ListByProject(ctx, p.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	taken := make(map[string]bool, len(existing)+len(cfg.Screens))
	for _, sc := range existing {
		taken[sc.ScreenID] = true
	}
	for i := range cfg.Screens {
		id := strings.TrimSpace(cfg.Screens[i].ScreenID)
		if id == "" || taken[id] {
			id = uuid.NewString()
		}
		taken[id] = true
		cfg.Screens[i].ScreenID = id
	}

	cfg.Theme = resolveTheme(in.Theme, cfg.Theme)
	cfg.ProjectVisualDescription = firstNonEmpty(in.VisualDescription, cfg.ProjectVisualDescription)
	cfg.ProjectName = firstNonEmpty(strings.TrimSpace(cfg.ProjectName), domain.PlaceholderName)

	stored, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := s.projects.ApplyConfig(ctx, p.ProjectID, cfg.ProjectName, cfg.Theme, cfg.ProjectVisualDescription, stored); err != nil {
		return nil, fmt.Errorf("apply config: %w", err)
	}

	for _, cs := range cfg.Screens {
		sc := &domain.Screen{
			ProjectID:   p.ProjectID,
			ScreenID:    cs.ScreenID,
			ScreenName:  cs.Name,
			Purpose:     cs.Purpose,
			Description: cs.LayoutDescription,
		}
		if err := s.screens.Insert(ctx, sc); err != nil {
			return nil, fmt.Errorf("insert screen %s: %w", cs.ScreenID, err)
		}
	}

	logging.New(ctx).Infof("generate_config", "project_id=%s screens=%d theme=%q", p.ProjectID, len(cfg.Screens), cfg.Theme)
	return cfg, nil
}

type ScreenInput struct {
	ProjectID         string
	ScreenID          string
	ScreenName        string
	Purpose           string
	Description       string
	DeviceType        string
	VisualDescription string
}

// GenerateScreenUI renders one screen and stores the markup as its code.
func (s *GenerationService) GenerateScreenUI(ctx context.Context, userID string, in ScreenInput) (string, error) {
	if in.ProjectID == "" || in.ScreenID == "" || in.ScreenName == "" || in.DeviceType == "" {
		return "", domain.ErrMissingFields
	}
	if !domain.ValidDevice(in.DeviceType) {
		return "", domain.ErrInvalidDevice
	}
	if _, err := s.projects.Get(ctx, userID, in.ProjectID); err != nil {
		return "", err
	}

	return s.render(ctx, prompts.Screen(in.DeviceType), in)
}

type EditInput struct {
	ProjectID   string
	ScreenID    string
	UserInput   string
	CurrentCode string
}

// EditScreen applies the requested change to the current markup and overwrites the screen's code.
func (s *GenerationService) EditScreen(ctx context.Context, userID string, in EditInput) (string, error) {
	if in.ProjectID == "" || in.ScreenID == "" || strings.TrimSpace(in.UserInput) == "" || in.CurrentCode == "" {
		return "", domain.ErrMissingFields
	}
	if _, err := s.projects.Get(ctx, userID, in.ProjectID); err != nil {
		return "", err
	}

	raw, err := s.llm.Complete(ctx, s.models.Edit, prompts.Edit(), prompts.EditRequest(in.CurrentCode, in.UserInput))
	if err != nil {
		return "", fmt.Errorf("edit screen: %w", err)
	}
	code := llm.StripHTMLFences(raw)
	if code == "" {
		return "", llm.ErrEmptyResponse
	}
	if err := s.screens.UpdateCode(ctx, in.ProjectID, in.ScreenID, code); err != nil {
		return "", err
	}
	return code, nil
}

// AddScreen creates a screen from a free-form prompt and renders it in the project's style.
// The row is kept without code when rendering fails. The credit is taken once the screen
// has code; a caller without credits gets the row removed again.
func (s *GenerationService) AddScreen(ctx context.Context, userID, projectID, prompt string) (*domain.Screen, error) {
	prompt = strings.TrimSpace(prompt)
	if projectID == "" || prompt == "" {
		return nil, domain.ErrMissingFields
	}
	p, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	sc := &domain.Screen{
		ProjectID:   projectID,
		ScreenID:    uuid.NewString(),
		ScreenName:  truncateRunes(prompt, addedScreenNameLength),
		Purpose:     prompt,
		Description: prompt,
	}
	if err := s.screens.Insert(ctx, sc); err != nil {
		return nil, fmt.Errorf("insert screen: %w", err)
	}

	code, err := s.render(ctx, prompts.NewScreen(p.Device, p.VisualDescription), screenInputFor(p, *sc))
	if err != nil {
		return sc, err
	}
	if err := s.credits.ConsumeCredit(ctx, userID); err != nil {
		if derr := s.screens.Delete(ctx, projectID, sc.ScreenID); derr != nil {
			logging.New(ctx).Errorf("add_screen", "project_id=%s screen_id=%s cleanup failed: %v", projectID, sc.ScreenID, derr)
		}
		return nil, err
	}
	sc.Code = &code
	return sc, nil
}

// GenerateProject runs the full pipeline. A project without screens gets a configuration
// first, then every screen is rendered in order; otherwise only screens without code are
// rendered. A failed screen is logged and skipped; a failed configuration aborts.
func (s *GenerationService) GenerateProject(ctx context.Context, userID, projectID string, report func(domain.Progress)) error {
	if report == nil {
		report = func(domain.Progress) {}
	}
	logger := logging.New(ctx)

	p, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return err
	}
	screens, err := s.screens.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list screens: %w", err)
	}

	if len(screens) == 0 {
		report(domain.Progress{Message: "Generating project configuration..."})
		if _, err := s.GenerateConfig(ctx, userID, ConfigInput{
			ProjectID:         projectID,
			UserInput:         p.UserInput,
			DeviceType:        p.Device,
			Theme:             p.Theme,
			VisualDescription: p.VisualDescription,
		}); err != nil {
			return err
		}
		if p, err = s.projects.Get(ctx, userID, projectID); err != nil {
			return err
		}
		if screens, err = s.screens.ListByProject(ctx, projectID); err != nil {
			return fmt.Errorf("list screens: %w", err)
		}
	}

	pending := make([]domain.Screen, 0, len(screens))
	for _, sc := range screens {
		if !sc.HasCode() {
			pending = append(pending, sc)
		}
	}

	total := len(pending)
	done := 0
	for i, sc := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		report(domain.Progress{
			Message:   fmt.Sprintf("Generating screen %d of %d: %s...", i+1, total, sc.ScreenName),
			Completed: done,
			Total:     total,
		})
		if _, err := s.render(ctx, prompts.Screen(p.Device), screenInputFor(p, sc)); err != nil {
			logger.Errorf("generate_project", "project_id=%s screen_id=%s error=%v", projectID, sc.ScreenID, err)
			continue
		}
		done++
	}

	report(domain.Progress{
		Message:   fmt.Sprintf("Generated %d of %d screens", done, total),
		Completed: done,
		Total:     total,
	})
	return nil
}

// Backfill renders up to limit screens that have no code, across all projects.
// It returns how many screens were rendered.
func (s *GenerationService) Backfill(ctx context.Context, limit int) (int, error) {
	logger := logging.New(ctx)

	refs, err := s.screens.ListMissingCode(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list screens without code: %w", err)
	}

	rendered := 0
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return rendered, err
		}
		p, err := s.projects.FindByProjectID(ctx, ref.ProjectID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return rendered, fmt.Errorf("load project %s: %w", ref.ProjectID, err)
		}
		sc, err := s.screens.Get(ctx, ref.ProjectID, ref.ScreenID)
		if err != nil {
			logger.Errorf("backfill", "project_id=%s screen_id=%s error=%v", ref.ProjectID, ref.ScreenID, err)
			continue
		}
		if _, err := s.render(ctx, prompts.Screen(p.Device), screenInputFor(p, *sc)); err != nil {
			logger.Errorf("backfill", "project_id=%s screen_id=%s error=%v", ref.ProjectID, ref.ScreenID, err)
			continue
		}
		rendered++
	}
	return rendered, nil
}

func (s *GenerationService) render(ctx context.Context, system string, in ScreenInput) (string, error) {
	user := prompts.ScreenDetails(in.ScreenName, in.Purpose, in.Description, in.VisualDescription)
	raw, err := s.llm.Complete(ctx, s.models.Screen, system, user)
	if err != nil {
		return "", fmt.Errorf("generate screen %s: %w", in.ScreenID, err)
	}
	code := llm.StripHTMLFences(raw)
	if code == "" {
		return "", llm.ErrEmptyResponse
	}
	if err := s.screens.UpdateCode(ctx, in.ProjectID, in.ScreenID, code); err != nil {
		return "", fmt.Errorf("save screen %s: %w", in.ScreenID, err)
	}
	return code, nil
}

func screenInputFor(p *domain.Project, sc domain.Screen) ScreenInput {
	return ScreenInput{
		ProjectID:         p.ProjectID,
		ScreenID:          sc.ScreenID,
		ScreenName:        sc.ScreenName,
		Purpose:           sc.Purpose,
		Description:       sc.Description,
		DeviceType:        p.Device,
		VisualDescription: p.VisualDescription,
	}
}

// resolveTheme prefers the caller's theme, then the model's when it names a known palette.
func resolveTheme(requested, generated string) string {
	if requested != "" {
		return requested
	}
	if generated != "" && themes.Valid(generated) {
		return generated
	}
	return themes.Default
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
