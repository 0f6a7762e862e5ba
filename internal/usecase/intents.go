package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/logging"
	"github.com/google/uuid"
)

const confirmScope = "payment:confirm"

// PaymentIntents is the server side of the card flow: it issues one intent
// per pending order and confirms each intent exactly once. The confirm
// step is the point where the order becomes real and the cart is cleared.
type PaymentIntents struct {
	carts     *Carts
	repo      CartRepo
	orders    OrderRepo
	issuer    IntentIssuer
	idem      IdempotencyStore
	events    OrderEvents
	publicKey string
}

func NewPaymentIntents(carts *Carts, repo CartRepo, orders OrderRepo, issuer IntentIssuer,
	idem IdempotencyStore, events OrderEvents, publicKey string) *PaymentIntents {
	return &PaymentIntents{
		carts:     carts,
		repo:      repo,
		orders:    orders,
		issuer:    issuer,
		idem:      idem,
		events:    events,
		publicKey: publicKey,
	}
}

// PublicKey is empty when card payments are not configured.
func (u *PaymentIntents) PublicKey() string { return u.publicKey }

// CreateIntent opens a pending order for the current cart total and asks
// the gateway for a matching intent. The pending order pins the amount the
// intent was created against.
func (u *PaymentIntents) CreateIntent(ctx context.Context, userID string) (domain.PaymentIntent, error) {
	if u.publicKey == "" {
		return domain.PaymentIntent{}, domain.ErrGatewayConfigMissing
	}
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	if cart.IsEmpty() {
		return domain.PaymentIntent{}, domain.ErrEmptyCart
	}

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("marshal items: %w", err)
	}

	orderID := uuid.NewString()
	intent, err := u.issuer.CreateIntent(ctx, cart.GrandTotal, orderID)
	if err != nil {
		return domain.PaymentIntent{}, err
	}

	rec := &OrderRecord{
		ID:          orderID,
		UserID:      userID,
		Status:      string(domain.StatusPending),
		AmountCents: cart.GrandTotal.Cents,
		Currency:    cart.GrandTotal.Currency,
		ItemsJSON:   string(itemsJSON),
		IntentID:    intent.IntentID(),
	}
	if err := u.orders.Create(ctx, rec); err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("create pending order: %w", err)
	}

	intent.OrderID = orderID
	intent.Status = domain.IntentCreated
	return intent, nil
}

// Confirm completes the pending order for a gateway-confirmed intent.
// Exactly once: replays surface ErrAlreadyConfirmed and never produce a
// second order or a second cart clear.
func (u *PaymentIntents) Confirm(ctx context.Context, userID, paymentIntentID string) (domain.Order, error) {
	if paymentIntentID == "" {
		return domain.Order{}, domain.ErrNotFound
	}

	// Fast path: a replay of an intent we already settled.
	if _, seen, _ := u.idem.Recall(ctx, confirmScope, paymentIntentID); seen {
		return domain.Order{}, domain.ErrAlreadyConfirmed
	}
	locked, err := u.idem.TryLock(ctx, confirmScope, paymentIntentID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("idempotency lock: %w", err)
	}
	if !locked {
		return domain.Order{}, domain.ErrAlreadyConfirmed
	}

	rec, err := u.orders.GetByIntentID(ctx, paymentIntentID)
	if err != nil {
		u.unlock(ctx, paymentIntentID)
		return domain.Order{}, err
	}
	// An intent belongs to the shopper whose order it opened.
	if rec.UserID != userID {
		u.unlock(ctx, paymentIntentID)
		return domain.Order{}, domain.ErrNotFound
	}

	// Guarded transition: the DB is the authority even if the idempotency
	// entry expired.
	flipped, err := u.orders.UpdateStatusIf(ctx, rec.ID,
		string(domain.StatusPending), string(domain.StatusCompleted))
	if err != nil {
		u.unlock(ctx, paymentIntentID)
		return domain.Order{}, fmt.Errorf("complete order: %w", err)
	}
	if !flipped {
		return domain.Order{}, domain.ErrAlreadyConfirmed
	}

	if err := u.repo.Clear(ctx, rec.UserID); err != nil {
		return domain.Order{}, fmt.Errorf("clear cart: %w", err)
	}
	_ = u.idem.Remember(ctx, confirmScope, paymentIntentID, rec.ID)

	if err := u.events.PublishSettled(ctx, SettledMsg{
		OrderID:  rec.ID,
		UserID:   rec.UserID,
		Cents:    rec.AmountCents,
		Currency: rec.Currency,
		Method:   string(domain.MethodGatewayCard),
	}); err != nil {
		logging.FromCtx(ctx).Error("publish_settled_failed", "order_id", rec.ID, "error", err.Error())
	}

	return domain.Order{
		ID:          rec.ID,
		TotalAmount: domain.NewMoney(rec.AmountCents, rec.Currency),
		Status:      domain.StatusCompleted,
	}, nil
}

// unlock releases the SetNX guard after a failed confirm so a legitimate
// retry is not mistaken for a replay.
func (u *PaymentIntents) unlock(ctx context.Context, paymentIntentID string) {
	if err := u.idem.Unlock(ctx, confirmScope, paymentIntentID); err != nil {
		logging.FromCtx(ctx).Error("idempotency_unlock_failed", "intent_id", paymentIntentID, "error", err.Error())
	}
}
