package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("bad input")

	assert.True(t, errors.Is(err, ErrorValidation))
	assert.False(t, errors.Is(err, ErrorNotFound))
	assert.Equal(t, "bad input", err.Error())
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create transaction: %w", ErrInvalidAmount)

	assert.True(t, errors.Is(wrapped, ErrorValidation))
	assert.True(t, errors.Is(wrapped, ErrInvalidAmount))

	var ve *ValidationError
	if assert.True(t, errors.As(wrapped, &ve)) {
		assert.Equal(t, "Amount must be a positive number.", ve.Message)
	}
}

func TestValidationErrors_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidAmount, ErrInvalidType))
	assert.False(t, errors.Is(ErrInvalidMonthFormat, ErrInvalidCategory))
}
