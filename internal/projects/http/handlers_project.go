package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/auth"
	"github.com/screenforge/screenforge-backend/internal/projects/domain"
	"github.com/screenforge/screenforge-backend/internal/projects/service"
)

const maxScreenshotBytes = 10 << 20

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.projects.Create(c.Request.Context(), auth.UserEmail(c), service.CreateInput{
		ProjectID: req.ProjectID,
		UserInput: req.UserInput,
		Device:    req.Device,
	})
	if err != nil {
		writeError(c, "create_project", "failed to create project", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), auth.UserEmail(c))
	if err != nil {
		writeError(c, "list_projects", "failed to list projects", err)
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"))
	if err != nil {
		writeError(c, "get_project", "failed to get project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	p, err := h.projects.Update(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"), domain.ProjectUpdate{
		ProjectName: req.ProjectName,
		Theme:       req.Theme,
		Screenshot:  req.Screenshot,
	})
	if err != nil {
		writeError(c, "update_project", "failed to update project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

// uploadScreenshot accepts the PNG as the multipart field "file".
func (h *Handler) uploadScreenshot(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	if fh.Size > maxScreenshotBytes {
		badRequest(c, "file too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot open file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxScreenshotBytes))
	if err != nil {
		badRequest(c, "cannot read file")
		return
	}
	if http.DetectContentType(data) != "image/png" {
		badRequest(c, "file must be a PNG image")
		return
	}

	p, err := h.projects.UploadScreenshot(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"), data)
	if err != nil {
		writeError(c, "upload_screenshot", "failed to upload screenshot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
