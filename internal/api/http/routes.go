package http

import (
	"github.com/gin-gonic/gin"
)

// RouteOptions toggles optional routes
type RouteOptions struct {
	LegacyPaths bool
}

// RegisterRoutes mounts the gallery API, the UI pages and the static fallback
func RegisterRoutes(router *gin.Engine, h *Handlers, opts RouteOptions) {
	router.GET("/health", h.Health)

	// Pages
	router.GET("/", h.Home)
	router.GET("/viewer", h.Viewer)

	api := router.Group("/api")
	{
		api.GET("/subdirectories", h.ListSubdirectories)
		api.PUT("/subdirectories/:directory_id", h.RenameSubdirectory)
		api.GET("/images/:directory_id", h.ListImages)

		api.GET("/image/:file_id", h.GetImage)
		api.HEAD("/image/:file_id", h.HeadImage)
		api.DELETE("/image/:file_id", h.DeleteImage)

		if opts.LegacyPaths {
			api.GET("/raw/*path", h.RawImage)
			api.HEAD("/raw/*path", h.RawImage)
		}
	}

	router.NoRoute(h.Static)
}
