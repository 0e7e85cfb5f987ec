package asimplevectors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors. Concrete errors returned by the client match them with
// errors.Is.
var (
	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("asimplevectors: transport failure")

	// ErrNotFound is matched by a *StatusError carrying 404.
	ErrNotFound = errors.New("asimplevectors: not found")

	// ErrUnauthorized is matched by a *StatusError carrying 401 or 403.
	ErrUnauthorized = errors.New("asimplevectors: unauthorized")

	// ErrConflict is matched by a *StatusError carrying 409, e.g. when a
	// space with the same name already exists.
	ErrConflict = errors.New("asimplevectors: conflict")

	// ErrEnvelope is matched by every *EnvelopeError.
	ErrEnvelope = errors.New("asimplevectors: unexpected response shape")

	// ErrInvalidArgument is returned before any request is sent when a
	// required argument is missing or out of range.
	ErrInvalidArgument = errors.New("asimplevectors: invalid argument")
)

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("asimplevectors: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StatusError reports a non-2xx response. Body holds the raw response body.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("asimplevectors: %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, string(e.Body))
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int { return e.StatusCode }

// Is classifies the status code into ErrNotFound, ErrUnauthorized or
// ErrConflict.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// EnvelopeError reports a 2xx response whose body does not have the
// expected shape. Field is the path of the missing or ill-typed field,
// e.g. "Ok" or "vectors[2].data.data".
type EnvelopeError struct {
	Field    string
	Expected string
	Body     []byte
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("asimplevectors: response field %q: expected %s", e.Field, e.Expected)
}

func (e *EnvelopeError) Is(target error) bool { return target == ErrEnvelope }

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err is a 401 or 403 from the server.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsConflict reports whether err is a 409 from the server.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsEnvelopeError reports whether err is a response shape mismatch.
func IsEnvelopeError(err error) bool {
	return errors.Is(err, ErrEnvelope)
}

// IsTransportError reports whether err is a network level failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
