package domain

import "testing"

func line(id string, cents int64, qty int) CartItem {
	unit := NewMoney(cents, "USD")
	return CartItem{
		ID:        id,
		ProductID: "p_" + id,
		UnitPrice: unit,
		Quantity:  qty,
		Total:     unit.Mul(qty),
	}
}

func TestCart_IsEmpty(t *testing.T) {
	if !(Cart{}).IsEmpty() {
		t.Error("expected zero cart to be empty")
	}

	c := Cart{
		Items:      []CartItem{line("a", 500, 2)},
		GrandTotal: NewMoney(1000, "USD"),
	}
	if c.IsEmpty() {
		t.Error("expected cart with items to be non-empty")
	}
}

func TestCart_ValidateOK(t *testing.T) {
	c := Cart{
		Items:      []CartItem{line("a", 1999, 2), line("b", 5, 1)},
		GrandTotal: NewMoney(4003, "USD"),
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid cart, got %v", err)
	}
}

func TestCart_ValidateBadLineTotal(t *testing.T) {
	it := line("a", 100, 2)
	it.Total = NewMoney(150, "USD")
	c := Cart{Items: []CartItem{it}, GrandTotal: NewMoney(150, "USD")}
	if err := c.Validate(); err == nil {
		t.Error("expected error for line total != unit_price * quantity")
	}
}

func TestCart_ValidateBadGrandTotal(t *testing.T) {
	c := Cart{
		Items:      []CartItem{line("a", 100, 2)},
		GrandTotal: NewMoney(100, "USD"),
	}
	if err := c.Validate(); err == nil {
		t.Error("expected error for grand total != item sum")
	}
}

func TestCart_ValidateZeroQuantity(t *testing.T) {
	it := line("a", 100, 1)
	it.Quantity = 0
	c := Cart{Items: []CartItem{it}, GrandTotal: NewMoney(100, "USD")}
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestPaymentIntent_IntentID(t *testing.T) {
	p := PaymentIntent{ClientSecret: "pi_abc123_secret_xyz"}
	if got := p.IntentID(); got != "pi_abc123" {
		t.Errorf("expected pi_abc123, got %q", got)
	}

	p = PaymentIntent{ClientSecret: "opaque"}
	if got := p.IntentID(); got != "opaque" {
		t.Errorf("expected pass-through for unstructured secret, got %q", got)
	}
}
