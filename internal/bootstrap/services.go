package bootstrap

import (
	"database/sql"

	"github.com/redis/go-redis/v9"

	"github.com/screenforge/screenforge-backend/config"
	"github.com/screenforge/screenforge-backend/internal/llm"
	"github.com/screenforge/screenforge-backend/internal/projects/repository"
	projectsvc "github.com/screenforge/screenforge-backend/internal/projects/service"
	"github.com/screenforge/screenforge-backend/internal/storage/objects"
	userrepo "github.com/screenforge/screenforge-backend/internal/users/repository"
	usersvc "github.com/screenforge/screenforge-backend/internal/users/service"
)

type Services struct {
	Users      *usersvc.UserService
	Projects   *projectsvc.ProjectService
	Generation *projectsvc.GenerationService

	// Runs is nil without a Redis client.
	Runs *projectsvc.RunService
}

func BuildServices(cfg *config.Config, db *sql.DB, rdb *redis.Client) *Services {
	users := usersvc.NewUserService(userrepo.NewUserRepository(db), cfg.App.EnforceCredits)

	projectRepo := repository.NewProjectRepository(db)
	screenRepo := repository.NewScreenRepository(db)

	var screenshots projectsvc.ScreenshotStore = objects.DataURLStore{}
	if cfg.StorageEnabled() {
		screenshots = objects.NewSupabaseStore(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.Bucket)
	}

	generation := projectsvc.NewGenerationService(
		projectRepo,
		screenRepo,
		llm.NewClient(cfg.LLM),
		projectsvc.Models{Config: cfg.LLM.ConfigModel, Screen: cfg.LLM.ScreenModel, Edit: cfg.LLM.EditModel},
		users,
	)

	s := &Services{
		Users:      users,
		Projects:   projectsvc.NewProjectService(projectRepo, screenRepo, screenshots),
		Generation: generation,
	}
	if rdb != nil {
		runs := repository.NewRunRepository(rdb, cfg.App.RunTimeout)
		s.Runs = projectsvc.NewRunService(projectRepo, runs, generation, cfg.App.RunTimeout)
	}
	return s
}
