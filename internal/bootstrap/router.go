package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/screenforge/screenforge-backend/internal/api/http"
	"github.com/screenforge/screenforge-backend/internal/api/http/middleware"
	projectshttp "github.com/screenforge/screenforge-backend/internal/projects/http"
	usershttp "github.com/screenforge/screenforge-backend/internal/users/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	AIRateLimit    int

	DB    *pgxpool.Pool
	Redis *redis.Client

	Auth       gin.HandlerFunc
	Users      usershttp.Service
	Projects   projectshttp.ProjectService
	Generation projectshttp.GenerationService
	Runs       projectshttp.RunService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader, "X-User-Email", "X-User-Name"},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(dep.AllowedOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	httpapi.NewCatalogHandler().RegisterRoutes(api)

	private := api.Group("")
	private.Use(dep.Auth)

	usershttp.New(dep.Users).Register(private.Group("/users"))

	var aiLimit gin.HandlerFunc
	if dep.AIRateLimit > 0 {
		aiLimit = middleware.NewRateLimiter(dep.AIRateLimit).Middleware()
	}
	projectshttp.New(dep.Projects, dep.Generation, dep.Runs, aiLimit).Register(private.Group("/projects"))

	return r
}
