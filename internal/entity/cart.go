package domain

import "fmt"

type CartItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   Money  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Total       Money  `json:"total"`
}

// Cart mirrors the server's authoritative cart. Item order is the
// server-reported order and carries no meaning.
type Cart struct {
	Items      []CartItem `json:"items"`
	GrandTotal Money      `json:"cart_total"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0 || c.GrandTotal.IsZero()
}

// Validate checks the mirrored invariants: each item's total equals
// unit_price * quantity and the grand total equals the sum of item totals,
// exact in the smallest currency unit.
func (c Cart) Validate() error {
	sum := Money{Currency: c.GrandTotal.Currency}
	for i, it := range c.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("cart item %d: quantity %d < 1", i, it.Quantity)
		}
		if want := it.UnitPrice.Mul(it.Quantity); !it.Total.Equal(want) {
			return fmt.Errorf("cart item %d: total %s != %s", i, it.Total, want)
		}
		var err error
		if sum, err = sum.Add(it.Total); err != nil {
			return fmt.Errorf("cart item %d: %w", i, err)
		}
	}
	if !sum.Equal(c.GrandTotal) {
		return fmt.Errorf("cart grand total %s != item sum %s", c.GrandTotal, sum)
	}
	return nil
}
