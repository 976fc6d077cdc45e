package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error.
type Kind string

const (
	KindTimeout      Kind = "timeout"
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnknown      Kind = "unknown"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Timeout(message string, err error) *Error {
	return New(KindTimeout, message, err)
}

func Unauthorized(message string, err error) *Error {
	return New(KindUnauthorized, message, err)
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func Unknown(message string, err error) *Error {
	return New(KindUnknown, message, err)
}

// KindOf extracts the Kind from any error, falling back to KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromStatus classifies an upstream HTTP status code.
func FromStatus(status int, message string) *Error {
	switch status {
	case http.StatusUnauthorized:
		return Unauthorized(message, nil)
	case http.StatusNotFound:
		return NotFound(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return Validation(message)
	default:
		return Unknown(message, nil)
	}
}

// StatusOf maps an error to the HTTP status the demo server responds with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error middleware for Gin
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if !errors.As(err, &appErr) {
				appErr = Unknown("Internal server error", err)
			}

			c.JSON(StatusOf(appErr), appErr)
			c.Abort()
		}
	}
}
