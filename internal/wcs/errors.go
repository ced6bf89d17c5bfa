package wcs

import (
	"errors"
	"fmt"
)

// Error represents a failure in backend selection, header loading, or a
// coordinate transform.
//
// Error kinds:
//   - Unavailable backend: a forced backend's native library is not present
//   - Load failure: the header could not be turned into a usable transform
//   - Unbound engine: a transform was requested before a successful Load
//   - Unsupported system: a coordinate system outside the engine's set
//   - Singular transform: the CD matrix is non-invertible
//   - Computation failure: the native call failed after a successful Load
//
// Load and computation failures are recovered locally by the engine and
// surfaced as results carrying the reason; unbound-engine and
// unsupported-system errors are contract violations returned immediately.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Backend names the engine backend involved, when known.
	Backend string

	// System identifies the coordinate system (for unsupported-system errors).
	System CoordinateSystem

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes WCS errors.
type ErrorCode string

const (
	// ErrCodeUnavailableBackend indicates a forced backend is not present.
	ErrCodeUnavailableBackend ErrorCode = "UNAVAILABLE_BACKEND"

	// ErrCodeLoadFailure indicates the header did not yield a usable transform.
	ErrCodeLoadFailure ErrorCode = "LOAD_FAILURE"

	// ErrCodeUnboundEngine indicates a transform was requested before Load.
	ErrCodeUnboundEngine ErrorCode = "UNBOUND_ENGINE"

	// ErrCodeUnsupportedSystem indicates a coordinate system outside the
	// engine's supported set.
	ErrCodeUnsupportedSystem ErrorCode = "UNSUPPORTED_SYSTEM"

	// ErrCodeSingularTransform indicates a CD matrix with zero determinant.
	ErrCodeSingularTransform ErrorCode = "SINGULAR_TRANSFORM"

	// ErrCodeComputationFailure indicates a native transform call failed.
	ErrCodeComputationFailure ErrorCode = "COMPUTATION_FAILURE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Backend != "" && e.System != "":
		return fmt.Sprintf("%s: %s (backend=%s, system=%s)", e.Code, e.Message, e.Backend, e.System)
	case e.Backend != "":
		return fmt.Sprintf("%s: %s (backend=%s)", e.Code, e.Message, e.Backend)
	case e.System != "":
		return fmt.Sprintf("%s: %s (system=%s)", e.Code, e.Message, e.System)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

func codeIs(err error, code ErrorCode) bool {
	var we *Error
	if errors.As(err, &we) {
		return we.Code == code
	}
	return false
}

// IsUnavailableBackend reports whether err is an unavailable-backend error.
// Uses errors.As to handle wrapped errors.
func IsUnavailableBackend(err error) bool { return codeIs(err, ErrCodeUnavailableBackend) }

// IsLoadFailure reports whether err is a load failure.
func IsLoadFailure(err error) bool { return codeIs(err, ErrCodeLoadFailure) }

// IsUnboundEngine reports whether err is an unbound-engine error.
func IsUnboundEngine(err error) bool { return codeIs(err, ErrCodeUnboundEngine) }

// IsUnsupportedSystem reports whether err is an unsupported-system error.
func IsUnsupportedSystem(err error) bool { return codeIs(err, ErrCodeUnsupportedSystem) }

// IsSingularTransform reports whether err is a singular-transform error.
func IsSingularTransform(err error) bool { return codeIs(err, ErrCodeSingularTransform) }

// IsComputationFailure reports whether err is a computation failure.
func IsComputationFailure(err error) bool { return codeIs(err, ErrCodeComputationFailure) }

func newLoadFailure(backend string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeLoadFailure,
		Message: fmt.Sprintf(format, args...),
		Backend: backend,
		Err:     err,
	}
}

func newUnbound(backend, msg string) *Error {
	return &Error{Code: ErrCodeUnboundEngine, Message: msg, Backend: backend}
}

func newUnsupportedSystem(backend string, system CoordinateSystem, msg string) *Error {
	return &Error{Code: ErrCodeUnsupportedSystem, Message: msg, Backend: backend, System: system}
}

func newComputationFailure(backend string, err error, op string) *Error {
	return &Error{
		Code:    ErrCodeComputationFailure,
		Message: fmt.Sprintf("error calculating %s: %v", op, err),
		Backend: backend,
		Err:     err,
	}
}
