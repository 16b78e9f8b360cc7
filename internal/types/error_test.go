package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientCreditError(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", &InsufficientCreditError{Channel: "sms", Required: 50, Available: 10})

	assert.True(t, errors.Is(err, ErrInsufficientCredit))

	var credErr *InsufficientCreditError
	if assert.True(t, errors.As(err, &credErr)) {
		assert.Equal(t, int64(40), credErr.Shortfall())
	}
	assert.Contains(t, err.Error(), "top up 40 first")
}

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("body", "must not be empty")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrRecipientNotFound))
	assert.Equal(t, "body: must not be empty", err.Error())
}
