package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrAuthentication = errors.New("authentication error")
	ErrConfiguration  = errors.New("configuration error")
	ErrHTTPRequest    = errors.New("HTTP request error")
	ErrHTTPResponse   = errors.New("HTTP response error")
	ErrPagination     = errors.New("pagination error")
	ErrDecode         = errors.New("decode error")
	ErrValidation     = errors.New("validation error")
)

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %w", errType, wrapped)
}

// TransportError is returned when no response was received at all
// (DNS, connection refused, TLS handshake, timeout).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrHTTPRequest, e.Err}
}

// RemoteError is returned when the server answered with a non-2xx status.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote server returned an error (%d %s): %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *RemoteError) Unwrap() error {
	return ErrHTTPResponse
}

// DecodeError is returned when a successful response body does not match
// the expected JSON shape.
type DecodeError struct {
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode response into %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a RemoteError.
func StatusCode(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
