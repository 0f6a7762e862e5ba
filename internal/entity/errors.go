package domain

import (
	"errors"
	"fmt"
)

// Guard and validation errors. These block an action without touching
// attempt or cart state.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrAttemptInProgress    = errors.New("a checkout attempt is already in progress")
	ErrStaleCart            = errors.New("cart changed since the attempt started")
	ErrInvalidTransition    = errors.New("invalid checkout transition")
	ErrGatewayConfigMissing = errors.New("card payment is not configured")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrAlreadyConfirmed     = errors.New("payment already confirmed")
	ErrOutOfStock           = errors.New("product out of stock")
	ErrAuth                 = errors.New("authentication required")
	ErrNotFound             = errors.New("not found")
)

// NetworkError wraps a transport-level failure. Money-moving calls are
// never retried automatically on one; the caller decides.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: network error: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// SettlementError is a business-rule rejection from the checkout service.
type SettlementError struct {
	Message string
}

func (e *SettlementError) Error() string { return "settlement rejected: " + e.Message }

// GatewayError is a rejection from the payment gateway (e.g. card declined).
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string { return "gateway: " + e.Message }
