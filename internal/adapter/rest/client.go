// Package rest binds the client core's ports to the cart/checkout
// service's HTTP contracts. One shared round-trip helper handles auth,
// JSON coding, and the error mapping every call shares.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/cfarhan/shopping/internal/entity"
)

// TokenSource supplies the bearer credential for every call. A missing or
// expired credential surfaces as domain.ErrAuth.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource wraps a fixed token (e.g. from a sign-in response).
type StaticTokenSource string

func (s StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrAuth
	}
	return string(s), nil
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

// do executes one JSON round trip. out may be nil. Transport failures map
// to NetworkError; non-2xx responses go through mapError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// mapError turns the service's {error: code} bodies into the domain
// taxonomy. Unknown codes come back as SettlementError so a new server
// rejection is still reported with its message.
func mapError(status int, raw []byte) error {
	if status == http.StatusUnauthorized {
		return domain.ErrAuth
	}

	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(raw, &body)

	switch body.Error {
	case "empty_cart":
		return domain.ErrEmptyCart
	case "invalid_quantity":
		return domain.ErrInvalidQuantity
	case "out_of_stock":
		return domain.ErrOutOfStock
	case "not_found":
		return domain.ErrNotFound
	case "already_confirmed":
		return domain.ErrAlreadyConfirmed
	case "card_not_configured":
		return domain.ErrGatewayConfigMissing
	case "gateway_unavailable":
		return domain.ErrGatewayUnavailable
	}

	msg := body.Error
	if msg == "" {
		msg = fmt.Sprintf("status %d", status)
	}
	return &domain.SettlementError{Message: msg}
}
