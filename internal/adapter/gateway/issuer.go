package gateway

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
)

// HTTPIssuer creates payment intents at the external gateway using the
// server's secret key. Used by cart-api, never by clients.
type HTTPIssuer struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewHTTPIssuer(baseURL, secretKey string, timeout time.Duration) *HTTPIssuer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPIssuer{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		secretKey:  secretKey,
	}
}

func (i *HTTPIssuer) CreateIntent(ctx context.Context, amount domain.Money, orderID string) (domain.PaymentIntent, error) {
	reqBody := struct {
		AmountCents int64  `json:"amount"`
		Currency    string `json:"currency"`
		Reference   string `json:"reference"`
	}{amount.Cents, amount.Currency, orderID}

	buf, err := json.Marshal(reqBody)
	if err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+"/v1/payment_intents", bytes.NewReader(buf))
	if err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+i.secretKey)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return domain.PaymentIntent{}, &domain.NetworkError{Op: "create payment intent", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.PaymentIntent{}, &domain.NetworkError{Op: "create payment intent", Err: err}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.PaymentIntent{}, fmt.Errorf("gateway create intent: status %d: %s", resp.StatusCode, raw)
	}

	var body struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.PaymentIntent{}, fmt.Errorf("decode intent response: %w", err)
	}
	if body.ClientSecret == "" {
		return domain.PaymentIntent{}, fmt.Errorf("gateway create intent: empty client_secret")
	}

	return domain.PaymentIntent{ClientSecret: body.ClientSecret, Status: domain.IntentCreated}, nil
}

var _ usecase.IntentIssuer = (*HTTPIssuer)(nil)

// LocalIssuer mints self-contained intents without an external gateway.
// Used in dev and tests where the real gateway is out of reach.
type LocalIssuer struct{}

func (LocalIssuer) CreateIntent(ctx context.Context, amount domain.Money, orderID string) (domain.PaymentIntent, error) {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return domain.PaymentIntent{}, err
	}
	id := hex.EncodeToString(b[:])
	return domain.PaymentIntent{
		ClientSecret: fmt.Sprintf("pi_%s_secret_%s", id[:12], id[12:]),
		Status:       domain.IntentCreated,
	}, nil
}

var _ usecase.IntentIssuer = LocalIssuer{}
