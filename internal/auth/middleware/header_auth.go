package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/auth"
)

const DemoEmail = "demo@screenforge.local"

// Header trusts X-User-Email and X-User-Name without verification.
// Missing email falls back to DemoEmail. Use this ONLY for development/testing.
func Header() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))
		if email == "" {
			email = DemoEmail
		}
		auth.SetIdentity(c, auth.Identity{
			UID:   email,
			Email: email,
			Name:  c.GetHeader("X-User-Name"),
		})
		c.Next()
	}
}
