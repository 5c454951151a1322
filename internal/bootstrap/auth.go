package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/config"
	"github.com/screenforge/screenforge-backend/internal/auth"
	authmw "github.com/screenforge/screenforge-backend/internal/auth/middleware"
)

// AuthMiddleware picks the identity middleware for the configured AUTH_MODE.
func AuthMiddleware(ctx context.Context, cfg *config.Config) (gin.HandlerFunc, error) {
	switch cfg.Auth.Mode {
	case "firebase":
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			return nil, err
		}
		return authmw.Firebase(client), nil
	case "jwt":
		return authmw.JWT(cfg.Auth.JWTSecret), nil
	case "header":
		return authmw.Header(), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.Auth.Mode)
	}
}
