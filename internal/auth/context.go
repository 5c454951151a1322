package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUID   = "auth_uid"
	CtxEmail = "email"
	CtxName  = "display_name"
)

// Identity is the caller as established by one of the auth middlewares.
// Email is the owner key for users and projects.
type Identity struct {
	UID   string
	Email string
	Name  string
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxUID, id.UID)
	c.Set(CtxEmail, strings.ToLower(strings.TrimSpace(id.Email)))
	c.Set(CtxName, strings.TrimSpace(id.Name))
}

// UserEmail returns the caller's email, or "" when the request is unauthenticated.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

func UserName(c *gin.Context) string {
	return c.GetString(CtxName)
}
