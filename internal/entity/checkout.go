package domain

type CheckoutMethod string

const (
	MethodLegacy      CheckoutMethod = "LEGACY"
	MethodGatewayCard CheckoutMethod = "GATEWAY_CARD"
)

type CheckoutState string

const (
	StateIdle                  CheckoutState = "IDLE"
	StateMethodChosen          CheckoutState = "METHOD_CHOSEN"
	StateSettling              CheckoutState = "SETTLING"
	StateAwaitingCardInput     CheckoutState = "AWAITING_CARD_INPUT"
	StateConfirmingWithGateway CheckoutState = "CONFIRMING_WITH_GATEWAY"
	StateConfirmingWithServer  CheckoutState = "CONFIRMING_WITH_SERVER"
	StateActionRequired        CheckoutState = "ACTION_REQUIRED"
	StateSucceeded             CheckoutState = "SUCCEEDED"
	StateFailed                CheckoutState = "FAILED"
)

// IsTerminal reports whether the attempt has run to an outcome. A new
// attempt may only start from a terminal state or Idle.
func (s CheckoutState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateActionRequired
}

func (s CheckoutState) String() string { return string(s) }

// CheckoutAttempt is one end-to-end effort to turn the cart into a paid
// order through exactly one method. At most one exists at a time.
type CheckoutAttempt struct {
	ID               string
	Method           CheckoutMethod
	State            CheckoutState
	CartTotalAtStart Money
	Intent           *PaymentIntent
	Order            *Order
	Reason           error
}
