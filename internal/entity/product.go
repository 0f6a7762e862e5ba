package domain

// Product is the catalog's pricing record. The cart service prices
// additions from it; clients never send prices.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}
