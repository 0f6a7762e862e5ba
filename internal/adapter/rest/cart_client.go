package rest

import (
	"context"
	"net/http"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
)

// CartClient implements usecase.CartService against the remote cart
// contract: GET /cart, POST /cart/add, PUT /cart/update, DELETE /cart/remove.
type CartClient struct {
	c *Client
}

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

func (cc *CartClient) Fetch(ctx context.Context) (domain.Cart, error) {
	var cart domain.Cart
	if err := cc.c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (cc *CartClient) Add(ctx context.Context, productID string, qty int) (domain.Cart, error) {
	req := struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}{productID, qty}

	var cart domain.Cart
	if err := cc.c.do(ctx, http.MethodPost, "/cart/add", req, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (cc *CartClient) Update(ctx context.Context, itemID string, qty int) (domain.Cart, error) {
	req := struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}{itemID, qty}

	var cart domain.Cart
	if err := cc.c.do(ctx, http.MethodPut, "/cart/update", req, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (cc *CartClient) Remove(ctx context.Context, itemID string) (domain.Cart, error) {
	req := struct {
		ItemID string `json:"item_id"`
	}{itemID}

	var cart domain.Cart
	if err := cc.c.do(ctx, http.MethodDelete, "/cart/remove", req, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

var _ usecase.CartService = (*CartClient)(nil)
