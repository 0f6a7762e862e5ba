package usecase

import (
	"context"
	"sync"

	domain "github.com/cfarhan/shopping/internal/entity"
)

// CartStore holds the client-visible cart snapshot and keeps it in sync
// with the remote cart service. The snapshot is only ever replaced by a
// server response, never locally mutated; price and stock are server truth.
type CartStore struct {
	svc CartService

	mu       sync.Mutex
	snapshot domain.Cart
}

func NewCartStore(svc CartService) *CartStore {
	return &CartStore{svc: svc}
}

// Load refetches the authoritative cart. Called on mount and whenever the
// cart may have changed server-side outside this session.
func (s *CartStore) Load(ctx context.Context) (domain.Cart, error) {
	cart, err := s.svc.Fetch(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.replace(cart), nil
}

// AddItem adds a product and replaces the snapshot with the server's
// response. Quantity is validated before any I/O.
func (s *CartStore) AddItem(ctx context.Context, productID string, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	cart, err := s.svc.Add(ctx, productID, qty)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.replace(cart), nil
}

func (s *CartStore) UpdateItem(ctx context.Context, itemID string, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	cart, err := s.svc.Update(ctx, itemID, qty)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.replace(cart), nil
}

func (s *CartStore) RemoveItem(ctx context.Context, itemID string) (domain.Cart, error) {
	cart, err := s.svc.Remove(ctx, itemID)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.replace(cart), nil
}

// CurrentSnapshot returns the last-loaded cart without I/O.
func (s *CartStore) CurrentSnapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Clear resets the local snapshot. It must only be called after a
// successful checkout is confirmed by the server or gateway; a failed
// checkout leaves the cart intact for retry.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = domain.Cart{GrandTotal: domain.Money{Currency: s.snapshot.GrandTotal.Currency}}
}

func (s *CartStore) replace(cart domain.Cart) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = cart
	return cart
}
