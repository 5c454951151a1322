package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:project_id", h.get)
	rg.PUT("/:project_id", h.update)
	rg.POST("/:project_id/screenshot", h.uploadScreenshot)

	rg.POST("/:project_id/config", h.ai(h.generateConfig)...)
	rg.POST("/:project_id/screens", h.ai(h.addScreen)...)
	rg.POST("/:project_id/screens/:screen_id/ui", h.ai(h.generateScreenUI)...)
	rg.POST("/:project_id/screens/:screen_id/edit", h.ai(h.editScreen)...)
	rg.DELETE("/:project_id/screens/:screen_id", h.deleteScreen)
	rg.GET("/:project_id/screens/:screen_id/export", h.exportScreen)

	rg.POST("/:project_id/generate", h.ai(h.startGeneration)...)
	rg.GET("/:project_id/generation", h.getGeneration)
	rg.GET("/:project_id/generation/stream", h.streamGeneration)
}

func (h *Handler) ai(handler gin.HandlerFunc) []gin.HandlerFunc {
	if h.aiLimit == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{h.aiLimit, handler}
}
