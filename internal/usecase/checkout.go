package usecase

import (
	"context"
	"log/slog"
	"sync"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/logging"
	"github.com/google/uuid"
)

// Checkout drives one attempt from cart to a terminal outcome through
// exactly one of two paths: a single-request legacy settle, or the
// create-intent/confirm-intent card flow. Both paths run through the same
// state machine so the single-in-flight guarantee holds uniformly.
//
// Every transition returns the resulting state (or a typed error) so the
// machine is testable without a rendering harness. Steps within an attempt
// are strictly sequential: the lock is released during I/O, but the phase
// marker makes any competing call fail fast instead of interleaving.
type Checkout struct {
	cart    *CartStore
	settler LegacySettler
	gateway CardGateway
	log     *slog.Logger

	mu      sync.Mutex
	attempt *domain.CheckoutAttempt
	busy    bool // an I/O step of the current attempt is outstanding
}

func NewCheckout(cart *CartStore, settler LegacySettler, gateway CardGateway) *Checkout {
	return &Checkout{
		cart:    cart,
		settler: settler,
		gateway: gateway,
		log:     logging.New("checkout"),
	}
}

// State reports the current machine state; Idle when no attempt exists.
func (c *Checkout) State() domain.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempt == nil {
		return domain.StateIdle
	}
	return c.attempt.State
}

// Attempt returns a copy of the current attempt for rendering, or nil.
func (c *Checkout) Attempt() *domain.CheckoutAttempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempt == nil {
		return nil
	}
	cp := *c.attempt
	return &cp
}

// Start opens a new attempt with the chosen method. Valid from Idle or any
// terminal state; starting from Succeeded is the explicit ack that lets the
// presentation layer show the confirmation first. The previous attempt and
// its payment intent are discarded, never resumed.
func (c *Checkout) Start(ctx context.Context, method domain.CheckoutMethod) (domain.CheckoutState, error) {
	c.mu.Lock()
	if c.busy || (c.attempt != nil && !c.attempt.State.IsTerminal()) {
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrAttemptInProgress
	}
	snapshot := c.cart.CurrentSnapshot()
	if snapshot.IsEmpty() {
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrEmptyCart
	}

	if method == domain.MethodGatewayCard {
		// The card method must present as unavailable when the gateway
		// capability never loaded, not as a flow that fails later.
		c.busy = true
		c.mu.Unlock()
		key, err := c.gateway.PublicKey(ctx)
		c.mu.Lock()
		c.busy = false
		if err != nil {
			st := c.stateLocked()
			c.mu.Unlock()
			return st, err
		}
		if key == "" {
			st := c.stateLocked()
			c.mu.Unlock()
			return st, domain.ErrGatewayConfigMissing
		}
	}

	id := uuid.NewString()
	c.attempt = &domain.CheckoutAttempt{
		ID:               id,
		Method:           method,
		State:            domain.StateMethodChosen,
		CartTotalAtStart: snapshot.GrandTotal,
	}
	c.mu.Unlock()

	c.log.Info("checkout_started", "attempt_id", id, "method", string(method),
		"cart_total", snapshot.GrandTotal.String())
	return domain.StateMethodChosen, nil
}

// Submit advances a MethodChosen attempt: the legacy path settles in one
// request; the card path creates a fresh payment intent and waits for card
// input.
func (c *Checkout) Submit(ctx context.Context) (domain.CheckoutState, error) {
	c.mu.Lock()
	if c.busy || c.attempt == nil || c.attempt.State != domain.StateMethodChosen {
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrInvalidTransition
	}

	if c.attempt.Method == domain.MethodLegacy {
		c.attempt.State = domain.StateSettling
		c.busy = true
		c.mu.Unlock()

		order, err := c.settler.Settle(ctx)

		c.mu.Lock()
		c.busy = false
		if err != nil {
			return c.failLocked(err)
		}
		c.attempt.Order = &order
		return c.succeedLocked()
	}

	c.busy = true
	c.mu.Unlock()

	intent, err := c.gateway.CreateIntent(ctx)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.log.Error("create_intent_failed", "attempt_id", c.attempt.ID, "error", err.Error())
		return c.failLocked(domain.ErrGatewayUnavailable)
	}
	c.attempt.Intent = &intent
	c.attempt.State = domain.StateAwaitingCardInput
	st := c.attempt.State
	c.mu.Unlock()
	return st, nil
}

// SubmitCard confirms the card payment with the gateway and then notifies
// the server. Success is not declared, and the cart not cleared, until the
// server confirmation returns. Once the gateway call begins the attempt
// must run to a terminal outcome; its result is applied even if the
// presentation layer stopped rendering.
func (c *Checkout) SubmitCard(ctx context.Context, card domain.CardDetails) (domain.CheckoutState, error) {
	c.mu.Lock()
	if c.busy || c.attempt == nil || c.attempt.State != domain.StateAwaitingCardInput {
		st := c.stateLocked()
		c.mu.Unlock()
		return st, domain.ErrInvalidTransition
	}
	// The intent was created against the total captured at Start. If the
	// cart changed since (another tab, another device), charging it would
	// collect the wrong amount: force a fresh attempt instead.
	if !c.cart.CurrentSnapshot().GrandTotal.Equal(c.attempt.CartTotalAtStart) {
		return c.failLocked(domain.ErrStaleCart)
	}

	secret := c.attempt.Intent.ClientSecret
	c.attempt.State = domain.StateConfirmingWithGateway
	c.busy = true
	c.mu.Unlock()

	conf, err := c.gateway.ConfirmCardPayment(ctx, secret, card)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		return c.failLocked(err)
	}
	switch conf.Status {
	case domain.ConfirmRequiresAction:
		// Additional authentication is pending on the gateway side.
		// Distinct state, neither success nor failure.
		c.attempt.State = domain.StateActionRequired
		st := c.attempt.State
		c.mu.Unlock()
		return st, nil
	case domain.ConfirmFailed:
		return c.failLocked(&domain.GatewayError{Message: conf.Message})
	}

	c.attempt.State = domain.StateConfirmingWithServer
	c.busy = true
	c.mu.Unlock()

	order, err := c.gateway.NotifyServerConfirmed(ctx, conf.PaymentIntentID)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		return c.failLocked(err)
	}
	c.attempt.Order = &order
	return c.succeedLocked()
}

// Cancel abandons the attempt before the card is submitted. Once a charge
// confirmation is in flight there is no safe client-side cancellation.
func (c *Checkout) Cancel() (domain.CheckoutState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy || c.attempt == nil || c.attempt.State != domain.StateAwaitingCardInput {
		return c.stateLocked(), domain.ErrInvalidTransition
	}
	c.log.Info("checkout_cancelled", "attempt_id", c.attempt.ID)
	c.attempt = nil
	return domain.StateIdle, nil
}

// succeedLocked finalizes the attempt and clears the cart exactly once.
// Called with c.mu held; unlocks before returning.
func (c *Checkout) succeedLocked() (domain.CheckoutState, error) {
	c.attempt.State = domain.StateSucceeded
	id := c.attempt.ID
	order := c.attempt.Order
	c.mu.Unlock()

	c.cart.Clear()
	c.log.Info("checkout_succeeded", "attempt_id", id,
		"order_id", order.ID, "total", order.TotalAmount.String())
	return domain.StateSucceeded, nil
}

// failLocked records the terminal failure. The cart is left untouched so
// the shopper can retry with a fresh Start. Called with c.mu held; unlocks
// before returning.
func (c *Checkout) failLocked(reason error) (domain.CheckoutState, error) {
	c.attempt.State = domain.StateFailed
	c.attempt.Reason = reason
	id := c.attempt.ID
	c.mu.Unlock()

	c.log.Error("checkout_failed", "attempt_id", id, "reason", reason.Error())
	return domain.StateFailed, reason
}

func (c *Checkout) stateLocked() domain.CheckoutState {
	if c.attempt == nil {
		return domain.StateIdle
	}
	return c.attempt.State
}
