package usecase

import (
	"context"
	"fmt"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/google/uuid"
)

// Carts is the server-side cart service. It owns pricing: items are priced
// from the catalog at add time, totals are recomputed on every mutation,
// and the full cart is returned so clients can mirror it verbatim.
type Carts struct {
	repo     CartRepo
	products ProductRepo
	currency string
}

func NewCarts(repo CartRepo, products ProductRepo, currency string) *Carts {
	return &Carts{repo: repo, products: products, currency: currency}
}

func (u *Carts) Get(ctx context.Context, userID string) (domain.Cart, error) {
	items, err := u.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return u.assemble(items), nil
}

// Add puts qty units of a product in the cart, merging with an existing
// line for the same product.
func (u *Carts) Add(ctx context.Context, userID, productID string, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	items, err := u.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{
			ID:          uuid.NewString(),
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   domain.NewMoney(p.PriceCents, u.currency),
			Quantity:    qty,
		})
	}

	for _, it := range items {
		if it.ProductID == productID && it.Quantity > p.Stock {
			return domain.Cart{}, domain.ErrOutOfStock
		}
	}

	if err := u.save(ctx, userID, items); err != nil {
		return domain.Cart{}, err
	}
	return u.assemble(items), nil
}

func (u *Carts) Update(ctx context.Context, userID, itemID string, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}
	items, err := u.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		return domain.Cart{}, domain.ErrNotFound
	}
	if err := u.save(ctx, userID, items); err != nil {
		return domain.Cart{}, err
	}
	return u.assemble(items), nil
}

func (u *Carts) Remove(ctx context.Context, userID, itemID string) (domain.Cart, error) {
	items, err := u.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return domain.Cart{}, domain.ErrNotFound
	}
	if err := u.save(ctx, userID, kept); err != nil {
		return domain.Cart{}, err
	}
	return u.assemble(kept), nil
}

func (u *Carts) save(ctx context.Context, userID string, items []domain.CartItem) error {
	if err := u.repo.Save(ctx, userID, items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// assemble recomputes line and grand totals. Totals are derived here and
// nowhere else, so the Cart invariants hold by construction.
func (u *Carts) assemble(items []domain.CartItem) domain.Cart {
	total := domain.Money{Currency: u.currency}
	for i := range items {
		items[i].Total = items[i].UnitPrice.Mul(items[i].Quantity)
		total, _ = total.Add(items[i].Total)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return domain.Cart{Items: items, GrandTotal: total}
}
