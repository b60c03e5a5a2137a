package gallery

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers map each sentinel to one status code.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrValidation           = errors.New("invalid request")
	ErrConflict             = errors.New("destination already exists")
	ErrForbidden            = errors.New("path traversal detected")
	ErrInternal             = errors.New("internal error")
)

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
