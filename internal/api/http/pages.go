package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/imageview/internal/shared/types"
)

// Home serves the gallery page
func (h *Handlers) Home(c *gin.Context) {
	h.page(c, "home-app", "index.html")
}

// Viewer serves the single image viewer page
func (h *Handlers) Viewer(c *gin.Context) {
	h.page(c, "viewer.html")
}

// Static serves unmatched GET and HEAD requests from the static directory
func (h *Handlers) Static(c *gin.Context) {
	if h.files == nil || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Not found"})
		return
	}
	h.files.ServeHTTP(c.Writer, c.Request)
}

func (h *Handlers) page(c *gin.Context, elem ...string) {
	if h.staticDir == "" {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Not found"})
		return
	}
	path := filepath.Join(append([]string{h.staticDir}, elem...)...)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Not found"})
		return
	}
	c.File(path)
}
