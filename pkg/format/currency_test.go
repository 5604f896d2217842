package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{1234.56, "$1,234.56"},
		{-1234.56, "-$1,234.56"},
		{-0.001, "$0.00"},
		{-0.005, "-$0.01"},
		{1200000, "$1,200,000.00"},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.expected {
			t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestWholeCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{112500, "$112,500"},
		{-12500, "-$12,500"},
		{850000, "$850,000"},
	}

	for _, tt := range tests {
		if got := WholeCurrency(tt.amount); got != tt.expected {
			t.Errorf("WholeCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(18); got != "18.0%" {
		t.Errorf("Percent(18) = %q", got)
	}
	if got := Percent(-3.25); got != "-3.2%" && got != "-3.3%" {
		t.Errorf("Percent(-3.25) = %q", got)
	}
}
