package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary
type Kind uint8

const (
	Internal Kind = iota
	Invalid
	NotFound
	Unauthorized
	Conflict
	Unavailable
)

var kindNames = map[Kind]string{
	Internal:     "internal",
	Invalid:      "invalid",
	NotFound:     "not found",
	Unauthorized: "unauthorized",
	Conflict:     "conflict",
	Unavailable:  "unavailable",
}

// E is an application error with a kind and optional cause
type E struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *E) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap lets errors.Is / errors.As reach the cause
func (e *E) Unwrap() error { return e.Cause }

// New creates an error of the given kind
func New(kind Kind, format string, a ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// Wrap attaches a kind and message to cause
func Wrap(kind Kind, cause error, msg string) *E {
	return &E{Kind: kind, Message: msg, Cause: cause}
}

// InvalidInput wraps a validation failure from a calculator
func InvalidInput(cause error) *E {
	return &E{Kind: Invalid, Message: "invalid input", Cause: cause}
}

// KindOf returns the kind of err, Internal when err is not an *E
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// String names the kind
func (k Kind) String() string {
	return kindNames[k]
}

// StatusCode maps an error onto an HTTP status
//   - context timeout/cancel → 504/408
//   - Invalid → 400, Unauthorized → 401, NotFound → 404, Conflict → 409
//   - Unavailable → 503
//   - everything else → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
