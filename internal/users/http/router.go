package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.getByEmail)
	rg.POST("", h.ensure)
	rg.GET("/me", h.me)
}
