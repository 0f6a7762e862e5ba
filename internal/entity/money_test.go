package domain

import "testing"

func TestMoney_Mul(t *testing.T) {
	m := NewMoney(1999, "USD").Mul(3)
	if m.Cents != 5997 {
		t.Errorf("expected 5997 cents, got %d", m.Cents)
	}
	if m.Currency != "USD" {
		t.Errorf("expected USD, got %q", m.Currency)
	}
}

func TestMoney_AddMismatchedCurrency(t *testing.T) {
	_, err := NewMoney(100, "USD").Add(NewMoney(100, "EUR"))
	if err != ErrCurrencyMismatch {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoney_Add(t *testing.T) {
	sum, err := NewMoney(150, "USD").Add(NewMoney(49, "USD"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Cents != 199 {
		t.Errorf("expected 199 cents, got %d", sum.Cents)
	}
}

func TestMoney_String(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34 USD"},
		{5, "0.05 USD"},
		{-250, "-2.50 USD"},
		{0, "0.00 USD"},
	}
	for _, c := range cases {
		got := NewMoney(c.cents, "USD").String()
		if got != c.want {
			t.Errorf("cents %d: expected %q, got %q", c.cents, c.want, got)
		}
	}
}

func TestMoney_Equal(t *testing.T) {
	if !NewMoney(100, "USD").Equal(NewMoney(100, "USD")) {
		t.Error("expected equal amounts to compare equal")
	}
	if NewMoney(100, "USD").Equal(NewMoney(100, "EUR")) {
		t.Error("expected different currencies to compare unequal")
	}
}
