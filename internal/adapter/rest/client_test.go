package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/cfarhan/shopping/internal/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, StaticTokenSource("tok"), 2*time.Second)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(domain.Cart{})
	})

	if _, err := NewCartClient(c).Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
}

func TestClient_MissingTokenIsAuthError(t *testing.T) {
	c := NewClient("http://unused.invalid", StaticTokenSource(""), time.Second)
	if _, err := NewCartClient(c).Fetch(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestClient_401MapsToAuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := NewCartClient(c).Fetch(context.Background()); !errors.Is(err, domain.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestClient_ErrorCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		code   string
		want   error
	}{
		{http.StatusBadRequest, "empty_cart", domain.ErrEmptyCart},
		{http.StatusBadRequest, "invalid_quantity", domain.ErrInvalidQuantity},
		{http.StatusBadRequest, "card_not_configured", domain.ErrGatewayConfigMissing},
		{http.StatusNotFound, "not_found", domain.ErrNotFound},
		{http.StatusConflict, "out_of_stock", domain.ErrOutOfStock},
		{http.StatusConflict, "already_confirmed", domain.ErrAlreadyConfirmed},
		{http.StatusBadGateway, "gateway_unavailable", domain.ErrGatewayUnavailable},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"error": tc.code})
		})
		_, err := NewCartClient(c).Fetch(context.Background())
		if !errors.Is(err, tc.want) {
			t.Errorf("code %q: expected %v, got %v", tc.code, tc.want, err)
		}
	}
}

func TestClient_UnknownCodeKeepsMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "fraud_check_failed"})
	})

	_, err := NewCheckoutClient(c).Settle(context.Background())
	var se *domain.SettlementError
	if !errors.As(err, &se) {
		t.Fatalf("expected SettlementError, got %v", err)
	}
	if se.Message != "fraud_check_failed" {
		t.Errorf("expected server code preserved, got %q", se.Message)
	}
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := NewClient(srv.URL, StaticTokenSource("tok"), time.Second)

	_, err := NewCartClient(c).Fetch(context.Background())
	var ne *domain.NetworkError
	if !errors.As(err, &ne) {
		t.Errorf("expected NetworkError, got %v", err)
	}
}

func TestPaymentClient_NullPublicKeyDisablesCards(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"publicKey": null}`))
	})

	key, err := NewPaymentClient(c).StripeConfig(context.Background())
	if err != nil {
		t.Fatalf("stripe config: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key for null publicKey, got %q", key)
	}
}

func TestPaymentClient_CreateIntent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-payment-intent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"client_secret":"pi_7_secret_z","order_id":"o-7"}`))
	})

	intent, err := NewPaymentClient(c).CreateIntent(context.Background())
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.ClientSecret != "pi_7_secret_z" || intent.OrderID != "o-7" {
		t.Errorf("unexpected intent: %+v", intent)
	}
	if intent.IntentID() != "pi_7" {
		t.Errorf("expected intent id pi_7, got %q", intent.IntentID())
	}
}

func TestCheckoutClient_SettleReturnsOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/checkout" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"order":{"id":"o-3","total_amount":{"cents":4003,"currency":"USD"},"status":"COMPLETED"}}`))
	})

	order, err := NewCheckoutClient(c).Settle(context.Background())
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if order.ID != "o-3" || order.Status != domain.StatusCompleted {
		t.Errorf("unexpected order: %+v", order)
	}
	if !order.TotalAmount.Equal(domain.NewMoney(4003, "USD")) {
		t.Errorf("unexpected total: %s", order.TotalAmount)
	}
}
