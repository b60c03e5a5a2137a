package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/imageview/internal/domain/gallery"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/imageview/internal/shared/types"
)

// statusFor maps a gallery error to its HTTP status and client message
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, gallery.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, gallery.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, "Unsupported media type"
	case errors.Is(err, gallery.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, gallery.ErrConflict):
		return http.StatusConflict, "A directory with that name already exists"
	case errors.Is(err, gallery.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the JSON error body for err
func (h *Handlers) respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		fields := append(tracing.Fields(c.Request.Context()),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		h.logger.Error("request failed", fields...)
		_ = c.Error(err)
	}
	c.JSON(status, types.ErrorResponse{Error: message})
}
