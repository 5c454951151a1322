package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/auth"
	"github.com/screenforge/screenforge-backend/internal/projects/service"
)

func (h *Handler) generateConfig(c *gin.Context) {
	var req configReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	cfg, err := h.gen.GenerateConfig(c.Request.Context(), auth.UserEmail(c), service.ConfigInput{
		ProjectID:         c.Param("project_id"),
		UserInput:         req.UserInput,
		DeviceType:        req.DeviceType,
		Theme:             req.Theme,
		VisualDescription: req.VisualDescription,
	})
	if err != nil {
		writeError(c, "generate_config", "failed to generate config", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "config": cfg})
}

func (h *Handler) addScreen(c *gin.Context) {
	var req addScreenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	sc, err := h.gen.AddScreen(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"), req.Prompt)
	if err != nil {
		writeError(c, "add_screen", "failed to add screen", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "screen": sc})
}

func (h *Handler) generateScreenUI(c *gin.Context) {
	var req screenUIReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	code, err := h.gen.GenerateScreenUI(c.Request.Context(), auth.UserEmail(c), service.ScreenInput{
		ProjectID:         c.Param("project_id"),
		ScreenID:          c.Param("screen_id"),
		ScreenName:        req.ScreenName,
		Purpose:           req.Purpose,
		Description:       req.Description,
		DeviceType:        req.DeviceType,
		VisualDescription: req.VisualDescription,
	})
	if err != nil {
		writeError(c, "generate_screen_ui", "failed to generate screen", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "code": code})
}

func (h *Handler) editScreen(c *gin.Context) {
	var req editReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	code, err := h.gen.EditScreen(c.Request.Context(), auth.UserEmail(c), service.EditInput{
		ProjectID:   c.Param("project_id"),
		ScreenID:    c.Param("screen_id"),
		UserInput:   req.UserInput,
		CurrentCode: req.CurrentCode,
	})
	if err != nil {
		writeError(c, "edit_screen", "failed to edit screen", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "code": code})
}

func (h *Handler) deleteScreen(c *gin.Context) {
	err := h.projects.DeleteScreen(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"), c.Param("screen_id"))
	if err != nil {
		writeError(c, "delete_screen", "failed to delete screen", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// exportScreen serves the screen as a downloadable HTML document.
func (h *Handler) exportScreen(c *gin.Context) {
	out, err := h.projects.ExportScreen(c.Request.Context(), auth.UserEmail(c), c.Param("project_id"), c.Param("screen_id"))
	if err != nil {
		writeError(c, "export_screen", "failed to export screen", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out.HTML))
}
