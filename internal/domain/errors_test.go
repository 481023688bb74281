package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", NotFoundError{Resource: "Package"})

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, "create booking: Package not found", err.Error())
}

func TestInternalError_HidesCauseInPublicMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := InternalError{Msg: "Failed to load bookings", Err: cause}

	assert.True(t, IsInternal(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to load bookings", err.PublicMessage())
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "Internal server error", InternalError{}.PublicMessage())
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("travellers", "Travellers must be at least 1")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "Travellers must be at least 1", err.Error())
	assert.Equal(t, []FieldError{{Path: "travellers", Message: "Travellers must be at least 1"}}, err.Errors)
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "Unauthorized", UnauthorizedError{}.Error())
	assert.Equal(t, "Forbidden", ForbiddenError{}.Error())
	assert.Equal(t, "Conflict", ConflictError{}.Error())
	assert.Equal(t, "Not found", NotFoundError{}.Error())
	assert.Equal(t, "validation error", ValidationError{}.Error())
}
