package rest

import (
	"context"
	"net/http"

	domain "github.com/cfarhan/shopping/internal/entity"
)

// PaymentClient speaks the payment-intent service contract:
// GET /stripe-config, POST /create-payment-intent, POST /confirm-payment.
type PaymentClient struct {
	c *Client
}

func NewPaymentClient(c *Client) *PaymentClient { return &PaymentClient{c: c} }

// StripeConfig returns the gateway publishable key. An absent or null key
// comes back as "" and must disable the card method.
func (pc *PaymentClient) StripeConfig(ctx context.Context) (string, error) {
	var resp struct {
		PublicKey *string `json:"publicKey"`
	}
	if err := pc.c.do(ctx, http.MethodGet, "/stripe-config", nil, &resp); err != nil {
		return "", err
	}
	if resp.PublicKey == nil {
		return "", nil
	}
	return *resp.PublicKey, nil
}

func (pc *PaymentClient) CreateIntent(ctx context.Context) (domain.PaymentIntent, error) {
	var resp struct {
		ClientSecret string `json:"client_secret"`
		OrderID      string `json:"order_id"`
	}
	if err := pc.c.do(ctx, http.MethodPost, "/create-payment-intent", nil, &resp); err != nil {
		return domain.PaymentIntent{}, err
	}
	return domain.PaymentIntent{
		ClientSecret: resp.ClientSecret,
		OrderID:      resp.OrderID,
		Status:       domain.IntentCreated,
	}, nil
}

// ConfirmPayment tells the server a gateway-confirmed intent may settle.
// This is the call that creates the order and clears the cart server-side.
func (pc *PaymentClient) ConfirmPayment(ctx context.Context, paymentIntentID string) (domain.Order, error) {
	req := struct {
		PaymentIntentID string `json:"payment_intent_id"`
	}{paymentIntentID}

	var resp struct {
		Order domain.Order `json:"order"`
	}
	if err := pc.c.do(ctx, http.MethodPost, "/confirm-payment", req, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}
