package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateToBase(t *testing.T) {
	live := Rates{"USD": 1, "EUR": 0.9, "GBP": 0.8, "JPY": 0}

	testCases := []struct {
		name       string
		from, base string
		rates      Rates
		want       float64
	}{
		{"same currency", "EUR", "EUR", live, 1},
		{"same unknown currency", "XYZ", "XYZ", nil, 1},
		{"same currency with zero rate", "JPY", "JPY", live, 1},
		{"case insensitive", "usd", "USD", nil, 1},
		{"live rate to anchor", "EUR", "USD", live, 1 / 0.9},
		{"live rate from anchor", "USD", "EUR", live, 0.9},
		{"live cross rate", "GBP", "EUR", live, 0.9 / 0.8},
		{"zero from rate falls back", "JPY", "USD", live, 1},
		{"missing base falls back", "EUR", "GBP", Rates{"EUR": 0.9}, 1.05 / 1.27},
		{"no rates EUR to USD", "EUR", "USD", nil, 1.05},
		{"no rates USD to GBP", "USD", "GBP", nil, 1 / 1.27},
		{"unknown currency is parity", "XYZ", "USD", nil, 1},
		{"unknown base is parity", "USD", "XYZ", Rates{"USD": 1}, 1},
		{"unknown to EUR", "XYZ", "EUR", nil, 1 / 1.05},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RateToBase(tc.from, tc.base, tc.rates), 1e-12)
		})
	}
}

func TestRateToBase_SameCurrencyIsExactlyOne(t *testing.T) {
	rates := Rates{"EUR": 0.93, "CHF": -1}
	for _, code := range []string{"USD", "EUR", "GBP", "CHF", "XYZ", "", "btc"} {
		if got := RateToBase(code, code, rates); got != 1 {
			t.Errorf("RateToBase(%q, %q) = %v, want 1", code, code, got)
		}
	}
}

func TestRates_Convert(t *testing.T) {
	rates := Rates{"USD": 1, "EUR": 0.5}
	assert.InDelta(t, 200.0, rates.Convert(100, "EUR", "USD"), 1e-9)
	assert.True(t, rates.HasLive("EUR", "USD"))
	assert.False(t, rates.HasLive("GBP", "USD"))

	var none Rates
	assert.InDelta(t, 105.0, none.Convert(100, "EUR", "USD"), 1e-9)
	assert.False(t, none.HasLive("EUR", "USD"))
	assert.True(t, none.HasLive("EUR", "eur"))
}
