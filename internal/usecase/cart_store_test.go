package usecase

import (
	"context"
	"errors"
	"testing"

	domain "github.com/cfarhan/shopping/internal/entity"
)

type countingCartSvc struct {
	fakeCartSvc
	calls int
}

func (c *countingCartSvc) Add(ctx context.Context, productID string, qty int) (domain.Cart, error) {
	c.calls++
	return c.cart, c.err
}

func TestCartStore_InvalidQuantityNeverHitsServer(t *testing.T) {
	svc := &countingCartSvc{}
	store := NewCartStore(svc)

	if _, err := store.AddItem(context.Background(), "p-1", 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := store.AddItem(context.Background(), "p-1", -2); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("expected no round trips for invalid quantity, got %d", svc.calls)
	}
}

func TestCartStore_SnapshotFollowsServerResponses(t *testing.T) {
	svc := &fakeCartSvc{cart: testCart(1000)}
	store := NewCartStore(svc)

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.GrandTotal.Equal(domain.NewMoney(1000, "USD")) {
		t.Errorf("expected 10.00 USD, got %s", got.GrandTotal)
	}

	// the server re-prices; the snapshot mirrors whatever came back
	svc.cart = testCart(1200)
	if _, err := store.AddItem(context.Background(), "p-1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !store.CurrentSnapshot().GrandTotal.Equal(domain.NewMoney(1200, "USD")) {
		t.Errorf("expected snapshot replaced by server response, got %s",
			store.CurrentSnapshot().GrandTotal)
	}
}

func TestCartStore_FailedCallLeavesSnapshot(t *testing.T) {
	svc := &fakeCartSvc{cart: testCart(1000)}
	store := NewCartStore(svc)
	store.Load(context.Background())

	svc.err = &domain.NetworkError{Op: "POST /cart/add", Err: errors.New("timeout")}
	if _, err := store.AddItem(context.Background(), "p-1", 1); err == nil {
		t.Fatal("expected error from failed call")
	}
	if store.CurrentSnapshot().IsEmpty() {
		t.Error("expected snapshot unchanged after a failed call")
	}
}

func TestCartStore_ClearKeepsCurrency(t *testing.T) {
	svc := &fakeCartSvc{cart: testCart(1000)}
	store := NewCartStore(svc)
	store.Load(context.Background())

	store.Clear()
	snap := store.CurrentSnapshot()
	if !snap.IsEmpty() {
		t.Error("expected empty snapshot after clear")
	}
	if snap.GrandTotal.Currency != "USD" {
		t.Errorf("expected currency preserved, got %q", snap.GrandTotal.Currency)
	}
}
