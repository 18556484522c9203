package money

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	m, err := New(2500, "brl")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Currency != "BRL" {
		t.Errorf("currency = %q, want BRL", m.Currency)
	}
	if _, err := New(100, "REAIS"); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("err = %v, want %v", err, ErrInvalidCurrency)
	}
}

func TestArithmetic(t *testing.T) {
	a := BRL(3000)
	b := BRL(1500)

	sum, err := a.Add(b)
	if err != nil || sum.Amount != 4500 {
		t.Errorf("Add = %v, %v; want 4500", sum, err)
	}
	diff, err := a.Sub(b)
	if err != nil || diff.Amount != 1500 {
		t.Errorf("Sub = %v, %v; want 1500", diff, err)
	}
	if got := a.Multiply(7); got.Amount != 21000 {
		t.Errorf("Multiply = %d, want 21000", got.Amount)
	}

	if _, err := a.Add(Must(100, "USD")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("mismatched add err = %v, want %v", err, ErrCurrencyMismatch)
	}
	if _, err := a.Add(Money{}); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("zero value add err = %v, want %v", err, ErrInvalidCurrency)
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		amount  int64
		percent int64
		want    int64
	}{
		{6000, 20, 1200},
		{14000, 40, 5600},
		{99, 50, 49}, // truncates to a centavo
		{1000, 0, 0},
	}
	for _, tt := range tests {
		if got := BRL(tt.amount).PercentOf(tt.percent); got.Amount != tt.want {
			t.Errorf("PercentOf(%d, %d%%) = %d, want %d", tt.amount, tt.percent, got.Amount, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := BRL(21050).String(); got != "210.50 BRL" {
		t.Errorf("String = %q, want %q", got, "210.50 BRL")
	}
}
