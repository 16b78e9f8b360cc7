package types

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrNoRows = errors.New("no records found")

var (
	ErrValidation           = errors.New("validation error")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrInsufficientCredit   = errors.New("insufficient credit")
	ErrGatewayUnavailable   = errors.New("gateway unavailable")
	ErrChannelNotConfigured = errors.New("channel not configured")
)

// ValidationError describes a rejected dispatch request field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InsufficientCreditError carries the numbers the UI shows in its "top up first" prompt.
type InsufficientCreditError struct {
	Channel   string
	Required  int64
	Available int64
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient %s credits: %d required, %d available (top up %d first)",
		e.Channel, e.Required, e.Available, e.Shortfall())
}

func (e *InsufficientCreditError) Shortfall() int64 {
	if e.Required <= e.Available {
		return 0
	}
	return e.Required - e.Available
}

func (e *InsufficientCreditError) Unwrap() error { return ErrInsufficientCredit }
