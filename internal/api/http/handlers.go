package http

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/imageview/internal/domain/delivery"
	"github.com/GriffinCanCode/imageview/internal/domain/gallery"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/imageview/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	gallery   *gallery.Service
	metrics   *HandlerMetrics
	logger    *zap.Logger
	staticDir string
	files     http.Handler
}

// NewHandlers creates a new handler set
func NewHandlers(svc *gallery.Service, metrics *HandlerMetrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		gallery: svc,
		metrics: metrics,
		logger:  logger,
	}
}

// WithStatic sets the directory the web UI is served from
func (h *Handlers) WithStatic(dir string) *Handlers {
	h.staticDir = dir
	h.files = http.FileServer(gin.Dir(dir, false))
	return h
}

// Health handles the health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:          "ok",
		BaseDir:         h.gallery.Base(),
		RegistryEntries: h.gallery.Registry().Len(),
	})
}

// ListSubdirectories lists the subdirectories of the base directory
func (h *Handlers) ListSubdirectories(c *gin.Context) {
	done := h.metrics.Track("list_subdirectories")

	dirs, err := h.gallery.ListSubdirectories()
	done(err)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SubdirectoriesResponse{Subdirectories: dirs})
}

// ListImages lists the images of one subdirectory
func (h *Handlers) ListImages(c *gin.Context) {
	directoryID := c.Param("directory_id")
	done := h.metrics.Track("list_images")

	dir, images, err := h.gallery.ListImages(directoryID)
	done(err)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ImagesResponse{
		DirectoryID:  directoryID,
		Subdirectory: dir.Name,
		Images:       images,
	})
}

// GetImage streams an image with cache validators
func (h *Handlers) GetImage(c *gin.Context) {
	h.image(c, true)
}

// HeadImage answers with the headers GetImage would send
func (h *Handlers) HeadImage(c *gin.Context) {
	h.image(c, false)
}

func (h *Handlers) image(c *gin.Context, includeBody bool) {
	done := h.metrics.Track("resolve_image")

	path, err := h.gallery.ResolveImage(c.Param("file_id"))
	done(err)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.deliver(c, path, includeBody)
}

// RawImage serves an image addressed by "<subdir>/<file>" under the base
// directory. Only registered when legacy paths are enabled.
func (h *Handlers) RawImage(c *gin.Context) {
	done := h.metrics.Track("resolve_image_path")

	path, err := h.gallery.ResolveImagePath(c.Param("path"))
	done(err)
	if err != nil {
		if errors.Is(err, gallery.ErrForbidden) {
			h.logger.Warn("path escape rejected",
				append(tracing.Fields(c.Request.Context()), zap.String("path", c.Param("path")))...,
			)
		}
		h.respondError(c, err)
		return
	}

	h.deliver(c, path, c.Request.Method != http.MethodHead)
}

func (h *Handlers) deliver(c *gin.Context, path string, includeBody bool) {
	result, err := delivery.Serve(c.Writer, c.Request, path, includeBody)
	if err != nil {
		h.logger.Error("failed to serve image",
			append(tracing.Fields(c.Request.Context()), zap.String("path", path), zap.Error(err))...,
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to read image"})
		return
	}
	if result.CopyErr != nil {
		h.logger.Warn("image body truncated",
			append(tracing.Fields(c.Request.Context()),
				zap.String("path", path),
				zap.Int64("bytes", result.Bytes),
				zap.Error(result.CopyErr),
			)...,
		)
	}
	h.metrics.Delivery(result, includeBody)
}

// DeleteImage deletes an image
func (h *Handlers) DeleteImage(c *gin.Context) {
	fileID := c.Param("file_id")
	done := h.metrics.Track("delete_image")

	path, err := h.gallery.DeleteImage(fileID)
	done(err)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DeleteImageResponse{
		Deleted: filepath.Base(path),
		FileID:  fileID,
	})
}

// RenameSubdirectory renames a subdirectory and returns its new ID
func (h *Handlers) RenameSubdirectory(c *gin.Context) {
	var req types.RenameDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "new_name is required"})
		return
	}

	done := h.metrics.Track("rename_subdirectory")

	result, err := h.gallery.RenameSubdirectory(c.Param("directory_id"), *req.NewName)
	done(err)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RenameDirectoryResponse{
		DirectoryID: result.DirectoryID,
		RenamedFrom: result.RenamedFrom,
		RenamedTo:   result.RenamedTo,
	})
}
