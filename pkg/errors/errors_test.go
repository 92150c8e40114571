package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrConflict, "unit has two representations")
	assert.Equal(t, "[CONFLICT] unit has two representations", err.Error())
	assert.Equal(t, errors.ErrConflict, err.Code)
	assert.Nil(t, err.Wrapped)
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMissingSource, "unit %q vanished", "Branding")
	assert.Equal(t, `[MISSING_SOURCE] unit "Branding" vanished`, err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := errors.Wrap(inner, errors.ErrExternalTool, "archive failed")

	assert.Equal(t, "[EXTERNAL_TOOL] archive failed: permission denied", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrExternalTool, "noop"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrExternalTool, "noop %d", 1))
}

func TestIsMatchesByCode(t *testing.T) {
	err := errors.New(errors.ErrConflict, "a")
	target := errors.New(errors.ErrConflict, "b")

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrGit, "c")))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Wrap(fmt.Errorf("boom"), errors.ErrGit, "git diff failed")

	assert.True(t, errors.IsErrorCode(err, errors.ErrGit))
	assert.False(t, errors.IsErrorCode(err, errors.ErrConflict))
	assert.False(t, errors.IsErrorCode(fmt.Errorf("plain"), errors.ErrGit))
}

func TestIsErrorCodeThroughWrapping(t *testing.T) {
	inner := errors.New(errors.ErrMissingSource, "gone")
	outer := fmt.Errorf("assembling unit: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrMissingSource))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrConflict, "dual representation").
		WithDetail("unit", "Branding").
		WithDetail("phase", "validate")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "Branding", details["unit"])
	assert.Equal(t, "validate", details["phase"])
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrConflict, errors.GetErrorCode(errors.New(errors.ErrConflict, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))
}
