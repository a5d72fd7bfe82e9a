package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authed := api.Group("", BearerAuthMiddleware(h.provider, h.logger))
	{
		authed.POST("/incidents", h.submitIncident)
		authed.GET("/incidents", h.listIncidents)
		authed.GET("/feed/stream", h.streamFeed)
	}

	api.GET("/system/health", h.healthCheck)
}
