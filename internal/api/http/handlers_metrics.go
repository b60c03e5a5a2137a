package http

import (
	"errors"

	"github.com/GriffinCanCode/imageview/internal/domain/delivery"
	"github.com/GriffinCanCode/imageview/internal/domain/gallery"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// Track starts timing a gallery operation. The returned func records the
// outcome derived from err.
func (hm *HandlerMetrics) Track(operation string) func(err error) {
	if hm == nil || hm.metrics == nil {
		return func(error) {}
	}
	timer := monitoring.NewTimer(hm.metrics, operation)
	return func(err error) {
		timer.Stop(outcome(err))
	}
}

// Delivery records how an image request was answered
func (hm *HandlerMetrics) Delivery(result delivery.Result, includeBody bool) {
	if hm == nil || hm.metrics == nil {
		return
	}
	label := result.Decision.String()
	if result.Decision == delivery.Deliver && !includeBody {
		label = "head"
	}
	hm.metrics.RecordDelivery(label)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, gallery.ErrNotFound):
		return "not_found"
	case errors.Is(err, gallery.ErrUnsupportedMediaType):
		return "unsupported"
	case errors.Is(err, gallery.ErrValidation):
		return "invalid"
	case errors.Is(err, gallery.ErrConflict):
		return "conflict"
	case errors.Is(err, gallery.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
