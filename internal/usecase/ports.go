package usecase

import (
	"context"

	domain "github.com/cfarhan/shopping/internal/entity"
)

// --- Client-side ports (remote contracts consumed by the core) ---

// CartService is the remote cart contract. Every call is one round trip;
// the returned cart is the server's authoritative snapshot.
type CartService interface {
	Fetch(ctx context.Context) (domain.Cart, error)
	Add(ctx context.Context, productID string, qty int) (domain.Cart, error)
	Update(ctx context.Context, itemID string, qty int) (domain.Cart, error)
	Remove(ctx context.Context, itemID string) (domain.Cart, error)
}

// LegacySettler settles the authoritative cart in a single request. The
// server computes the order atomically and clears the cart itself.
// Never retried automatically: a timed-out settle may have succeeded.
type LegacySettler interface {
	Settle(ctx context.Context) (domain.Order, error)
}

// CardGateway is the create-intent/confirm-intent protocol.
type CardGateway interface {
	// PublicKey returns the gateway's publishable key, or "" when the
	// card method must present as unavailable.
	PublicKey(ctx context.Context) (string, error)
	CreateIntent(ctx context.Context) (domain.PaymentIntent, error)
	ConfirmCardPayment(ctx context.Context, clientSecret string, card domain.CardDetails) (domain.GatewayConfirmation, error)
	// NotifyServerConfirmed triggers server-side order creation and cart
	// clearing. Called exactly once, only after the gateway confirmed.
	NotifyServerConfirmed(ctx context.Context, paymentIntentID string) (domain.Order, error)
}

// --- Server-side ports (cart-api persistence and collaborators) ---

// Persistence shape (kept out of domain).
type OrderRecord struct {
	ID, UserID, Status, ItemsJSON, Currency, IntentID string
	AmountCents                                       int64
}

type OrderRepo interface {
	Create(ctx context.Context, o *OrderRecord) error
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
	GetByIntentID(ctx context.Context, intentID string) (*OrderRecord, error)
	// UpdateStatusIf flips status only when the current status matches;
	// returns false when nothing matched.
	UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error)
}

type CartRepo interface {
	Get(ctx context.Context, userID string) ([]domain.CartItem, error)
	// Save replaces the user's items wholesale (last writer wins).
	Save(ctx context.Context, userID string, items []domain.CartItem) error
	Clear(ctx context.Context, userID string) error
}

type ProductRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// IntentIssuer creates a payment intent at the external gateway.
type IntentIssuer interface {
	CreateIntent(ctx context.Context, amount domain.Money, orderID string) (domain.PaymentIntent, error)
}

// SettledMsg is published after an order settles (either path).
type SettledMsg struct {
	OrderID  string `json:"orderId"`
	UserID   string `json:"userId"`
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
	Method   string `json:"method"`
}

type OrderEvents interface {
	PublishSettled(ctx context.Context, msg SettledMsg) error
}
