package contract

import (
	"errors"
	"fmt"
)

var (
	ErrModelInvoke   = errors.New("model invoke failed")
	ErrValidation    = errors.New("validation failed")
	ErrTransport     = errors.New("transport failed")
	ErrHTTP          = errors.New("http status error")
	ErrDecode        = errors.New("response decode failed")
	ErrConfiguration = errors.New("invalid configuration")
)

// HTTPError is returned when a remote service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", ErrHTTP, e.StatusCode, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// Kind reports the taxonomy bucket of err, or "internal" when it is not one of ours.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrHTTP):
		return "http"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrModelInvoke):
		return "model"
	default:
		return "internal"
	}
}
