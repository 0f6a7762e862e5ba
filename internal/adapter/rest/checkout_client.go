package rest

import (
	"context"
	"net/http"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
)

// CheckoutClient implements the legacy settlement path: one POST /checkout
// against the authoritative cart.
type CheckoutClient struct {
	c *Client
}

func NewCheckoutClient(c *Client) *CheckoutClient { return &CheckoutClient{c: c} }

func (cc *CheckoutClient) Settle(ctx context.Context) (domain.Order, error) {
	var resp struct {
		Order domain.Order `json:"order"`
	}
	if err := cc.c.do(ctx, http.MethodPost, "/checkout", nil, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}

var _ usecase.LegacySettler = (*CheckoutClient)(nil)
