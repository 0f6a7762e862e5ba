package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const baseYAML = `
app:
  name: cart-api
  http_addr: ":8080"
  currency: USD
mysql:
  dsn: "user:pass@tcp(localhost:3306)/shopping?parseTime=true"
security:
  jwt_secret: base-secret
  issuer: cart-api
  audience: shoppers
  ttl: 60
idempotency:
  ttl: 24h
`

func writeConfigs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad_BaseOnly(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})

	cfg, err := Load(dir, "dev")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.HTTPAddr != ":8080" || cfg.App.Currency != "USD" {
		t.Errorf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Idempotency.TTL != 24*time.Hour {
		t.Errorf("expected 24h idempotency ttl, got %s", cfg.Idempotency.TTL)
	}
}

func TestLoad_EnvFileOverridesBase(t *testing.T) {
	dir := writeConfigs(t, map[string]string{
		"base.yaml": baseYAML,
		"prod.yaml": "app:\n  http_addr: \":9090\"\n",
	})

	cfg, err := Load(dir, "prod")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.HTTPAddr != ":9090" {
		t.Errorf("expected prod override, got %q", cfg.App.HTTPAddr)
	}
	if cfg.App.Currency != "USD" {
		t.Errorf("expected base value kept, got %q", cfg.App.Currency)
	}
}

func TestLoad_EnvVarsWin(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})

	t.Setenv("SHOPPING_GATEWAY__PUBLIC_KEY", "pk_live_x")
	t.Setenv("SHOPPING_APP__CURRENCY", "EUR")

	cfg, err := Load(dir, "dev")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gateway.PublicKey != "pk_live_x" {
		t.Errorf("expected env var override, got %q", cfg.Gateway.PublicKey)
	}
	if cfg.App.Currency != "EUR" {
		t.Errorf("expected env var override, got %q", cfg.App.Currency)
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	dir := writeConfigs(t, map[string]string{
		"base.yaml": "app:\n  http_addr: \":8080\"\n",
	})

	if _, err := Load(dir, "dev"); err == nil {
		t.Error("expected validation error for incomplete config")
	}
}
