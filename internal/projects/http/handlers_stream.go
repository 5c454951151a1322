package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/auth"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
)

var keepAliveInterval = 15 * time.Second

// streamGeneration pushes run updates as Server-Sent Events until the run
// finishes or the client goes away.
func (h *Handler) streamGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	run, updates, stop, err := h.runs.Watch(ctx, auth.UserEmail(c), c.Param("project_id"))
	if err != nil {
		writeError(c, "stream_generation", "failed to stream generation", err)
		return
	}
	defer stop()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	writeEvent(c, "initial", run)
	flusher.Flush()
	if run.Terminal() {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case r, ok := <-updates:
			if !ok {
				return
			}
			writeEvent(c, "progress", r)
			flusher.Flush()
			if r.Terminal() {
				return
			}
		}
	}
}

func writeEvent(c *gin.Context, event string, run *domain.Run) {
	data, _ := json.Marshal(gin.H{"run": run})
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
}
