package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/auth"
)

// startGeneration kicks off a background run that configures the project and renders
// every screen. Progress is available from the generation endpoints.
func (h *Handler) startGeneration(c *gin.Context) {
	run, err := h.runs.Start(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"))
	if err != nil {
		writeError(c, "start_generation", "failed to start generation", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"ok": true, "run": run})
}

func (h *Handler) getGeneration(c *gin.Context) {
	run, err := h.runs.Get(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"))
	if err != nil {
		writeError(c, "get_generation", "failed to get generation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "run": run})
}
