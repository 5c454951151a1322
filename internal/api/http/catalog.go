package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenforge/screenforge-backend/internal/prompts"
	"github.com/screenforge/screenforge-backend/internal/themes"
)

// CatalogHandler serves the static theme palette and prompt suggestions.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/themes", h.listThemes)
	r.GET("/themes/:name", h.getTheme)
	r.GET("/suggestions", h.suggestions)
}

func (h *CatalogHandler) listThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "themes": themes.List()})
}

func (h *CatalogHandler) getTheme(c *gin.Context) {
	t, ok := themes.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "theme not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "theme": t, "css": themes.CSSVariables(t.Name)})
}

func (h *CatalogHandler) suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggestions": prompts.Suggestions()})
}
