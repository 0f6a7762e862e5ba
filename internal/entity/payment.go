package domain

import "strings"

type IntentStatus string

const (
	IntentCreated   IntentStatus = "CREATED"
	IntentConfirmed IntentStatus = "CONFIRMED"
	IntentFailed    IntentStatus = "FAILED"
)

// PaymentIntent is a gateway-issued authorization handle. It belongs to
// exactly one checkout attempt; a new attempt requests a fresh one.
type PaymentIntent struct {
	ClientSecret string       `json:"client_secret"`
	OrderID      string       `json:"order_id"`
	Status       IntentStatus `json:"status"`
}

// IntentID extracts the intent identifier from a client secret of the
// form "pi_xxx_secret_yyy".
func (p PaymentIntent) IntentID() string {
	if i := strings.Index(p.ClientSecret, "_secret_"); i > 0 {
		return p.ClientSecret[:i]
	}
	return p.ClientSecret
}

type ConfirmStatus string

const (
	ConfirmSucceeded      ConfirmStatus = "succeeded"
	ConfirmRequiresAction ConfirmStatus = "requires_action"
	ConfirmFailed         ConfirmStatus = "failed"
)

// GatewayConfirmation is the gateway's answer to a card confirmation.
type GatewayConfirmation struct {
	Status          ConfirmStatus
	PaymentIntentID string
	Message         string
}

// CardDetails is passed through to the gateway verbatim. Card handling
// and PCI scope live entirely on the gateway side.
type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
}
