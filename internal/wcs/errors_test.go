package wcs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := &Error{
		Code:    ErrCodeUnsupportedSystem,
		Message: "no such coordinate system available",
		Backend: "wcslib",
		System:  SystemGalactic,
	}

	msg := err.Error()
	assert.Contains(t, msg, "UNSUPPORTED_SYSTEM")
	assert.Contains(t, msg, "backend=wcslib")
	assert.Contains(t, msg, "system=galactic")
}

func TestError_HelpersSeeThroughWrapping(t *testing.T) {
	base := newLoadFailure("tangent", nil, "CRVAL1 out of range: %g", 400.0)
	wrapped := fmt.Errorf("loading image: %w", base)

	assert.True(t, IsLoadFailure(wrapped))
	assert.False(t, IsSingularTransform(wrapped))
	assert.False(t, IsLoadFailure(fmt.Errorf("plain error")))
	assert.False(t, IsLoadFailure(nil))
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("keyword %q not found", "CRPIX1")
	err := newLoadFailure("tangent", cause, "reference pixel: %v", cause)

	assert.ErrorIs(t, err, cause)
}
