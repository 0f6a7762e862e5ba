// Package gateway wraps the external payment gateway's client protocol.
// The gateway is a black box: it takes a client secret plus card details
// and answers with an intent status. Card data never touches our server.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cfarhan/shopping/internal/adapter/rest"
	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
)

// CardGateway implements usecase.CardGateway. The confirm handle is an
// explicitly owned, lazily initialized singleton: it is constructed once,
// on the first successful config fetch, and reused for the process
// lifetime. Until a usable public key is seen the card method presents as
// unavailable.
type CardGateway struct {
	payments   *rest.PaymentClient
	gatewayURL string
	timeout    time.Duration

	initOnce sync.Once
	handle   *confirmHandle
}

func NewCardGateway(payments *rest.PaymentClient, gatewayURL string, timeout time.Duration) *CardGateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CardGateway{payments: payments, gatewayURL: gatewayURL, timeout: timeout}
}

func (g *CardGateway) PublicKey(ctx context.Context) (string, error) {
	key, err := g.payments.StripeConfig(ctx)
	if err != nil {
		return "", err
	}
	if key != "" {
		g.initOnce.Do(func() {
			g.handle = newConfirmHandle(g.gatewayURL, key, g.timeout)
		})
	}
	return key, nil
}

func (g *CardGateway) CreateIntent(ctx context.Context) (domain.PaymentIntent, error) {
	return g.payments.CreateIntent(ctx)
}

func (g *CardGateway) ConfirmCardPayment(ctx context.Context, clientSecret string, card domain.CardDetails) (domain.GatewayConfirmation, error) {
	if g.handle == nil {
		return domain.GatewayConfirmation{}, domain.ErrGatewayConfigMissing
	}
	return g.handle.confirm(ctx, clientSecret, card)
}

func (g *CardGateway) NotifyServerConfirmed(ctx context.Context, paymentIntentID string) (domain.Order, error) {
	return g.payments.ConfirmPayment(ctx, paymentIntentID)
}

var _ usecase.CardGateway = (*CardGateway)(nil)

// confirmHandle is the gateway's own client protocol. Response shape:
// {"error": "..."} or {"paymentIntent": {"id": "...", "status": "..."}}.
type confirmHandle struct {
	httpClient *http.Client
	baseURL    string
	publicKey  string
}

func newConfirmHandle(baseURL, publicKey string, timeout time.Duration) *confirmHandle {
	return &confirmHandle{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		publicKey:  publicKey,
	}
}

func (h *confirmHandle) confirm(ctx context.Context, clientSecret string, card domain.CardDetails) (domain.GatewayConfirmation, error) {
	reqBody := struct {
		ClientSecret string             `json:"client_secret"`
		Card         domain.CardDetails `json:"card"`
	}{clientSecret, card}

	buf, err := json.Marshal(reqBody)
	if err != nil {
		return domain.GatewayConfirmation{}, fmt.Errorf("marshal confirm request: %w", err)
	}

	url := h.baseURL + "/v1/payment_intents/confirm"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return domain.GatewayConfirmation{}, fmt.Errorf("build confirm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.publicKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return domain.GatewayConfirmation{}, &domain.NetworkError{Op: "confirm card payment", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GatewayConfirmation{}, &domain.NetworkError{Op: "confirm card payment", Err: err}
	}

	var body struct {
		Error         string `json:"error"`
		PaymentIntent *struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"paymentIntent"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.GatewayConfirmation{}, fmt.Errorf("decode confirm response: %w", err)
	}

	// A declined card is a confirmation outcome, not a transport error.
	if body.Error != "" {
		return domain.GatewayConfirmation{Status: domain.ConfirmFailed, Message: body.Error}, nil
	}
	if body.PaymentIntent == nil {
		return domain.GatewayConfirmation{}, fmt.Errorf("gateway response missing paymentIntent (status %d)", resp.StatusCode)
	}

	out := domain.GatewayConfirmation{PaymentIntentID: body.PaymentIntent.ID}
	switch body.PaymentIntent.Status {
	case "succeeded":
		out.Status = domain.ConfirmSucceeded
	case "requires_action", "requires_source_action":
		out.Status = domain.ConfirmRequiresAction
	default:
		out.Status = domain.ConfirmFailed
		out.Message = "unexpected intent status: " + body.PaymentIntent.Status
	}
	return out, nil
}
