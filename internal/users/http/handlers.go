package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/auth"
	"github.com/screenforge/screenforge-backend/internal/logging"
	"github.com/screenforge/screenforge-backend/internal/users/domain"
)

// getByEmail answers with the user or null. Only the caller's own record is visible.
func (h *Handler) getByEmail(c *gin.Context) {
	caller := auth.UserEmail(c)
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		email = caller
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email is required"})
		return
	}
	if email != caller {
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": nil})
		return
	}

	u, err := h.svc.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": nil})
		return
	}
	if err != nil {
		logging.New(c.Request.Context()).Error("get_user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to get user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

// ensure creates the caller's user record on first login. The body may carry a display name;
// the email always comes from the authenticated identity.
func (h *Handler) ensure(c *gin.Context) {
	var req ensureReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = auth.UserName(c)
	}
	h.respondEnsured(c, name)
}

func (h *Handler) me(c *gin.Context) {
	h.respondEnsured(c, auth.UserName(c))
}

func (h *Handler) respondEnsured(c *gin.Context, name string) {
	u, err := h.svc.EnsureUser(c.Request.Context(), name, auth.UserEmail(c))
	if errors.Is(err, domain.ErrEmailRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email is required"})
		return
	}
	if err != nil {
		logging.New(c.Request.Context()).Error("ensure_user", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to sync user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}
