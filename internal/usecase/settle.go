package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/logging"
	"github.com/google/uuid"
)

// Settle is the legacy checkout: one request settles the authoritative
// cart. The order is created and the cart cleared server-side, so the
// client never has to reconcile a partial outcome.
type Settle struct {
	carts  *Carts
	repo   CartRepo
	orders OrderRepo
	events OrderEvents
}

func NewSettle(carts *Carts, repo CartRepo, orders OrderRepo, events OrderEvents) *Settle {
	return &Settle{carts: carts, repo: repo, orders: orders, events: events}
}

func (u *Settle) Execute(ctx context.Context, userID string) (domain.Order, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if cart.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("marshal items: %w", err)
	}

	rec := &OrderRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      string(domain.StatusCompleted),
		AmountCents: cart.GrandTotal.Cents,
		Currency:    cart.GrandTotal.Currency,
		ItemsJSON:   string(itemsJSON),
	}
	if err := u.orders.Create(ctx, rec); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	if err := u.repo.Clear(ctx, userID); err != nil {
		return domain.Order{}, fmt.Errorf("clear cart: %w", err)
	}

	// Best-effort: the settlement already happened; a publish failure is
	// logged, not surfaced to the shopper.
	if err := u.events.PublishSettled(ctx, SettledMsg{
		OrderID:  rec.ID,
		UserID:   userID,
		Cents:    rec.AmountCents,
		Currency: rec.Currency,
		Method:   string(domain.MethodLegacy),
	}); err != nil {
		logging.FromCtx(ctx).Error("publish_settled_failed", "order_id", rec.ID, "error", err.Error())
	}

	return domain.Order{
		ID:          rec.ID,
		TotalAmount: domain.NewMoney(rec.AmountCents, rec.Currency),
		Status:      domain.StatusCompleted,
	}, nil
}
