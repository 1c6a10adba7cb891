package folio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHoldings(t *testing.T) {
	input := `{"id":"h1","portfolioId":"p","name":"Acme","type":"stock","symbol":"ACME","quantity":10,"currency":"usd","costBasis":50}

{"id":"h2","portfolioId":"p","type":"cash","manualValue":1000,"currency":"EUR","costBasisCurrency":"usd"}
`
	holdings, err := DecodeHoldings("holdings.jsonl", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	h1 := holdings[0]
	assert.Equal(t, Stock, h1.Type)
	assert.Equal(t, "USD", h1.Currency)
	require.NotNil(t, h1.Quantity)
	assert.Equal(t, 10.0, *h1.Quantity)
	assert.Nil(t, h1.ManualValue)
	assert.Equal(t, "Acme", h1.Label())

	h2 := holdings[1]
	assert.Equal(t, Cash, h2.Type)
	assert.Nil(t, h2.Quantity)
	assert.Equal(t, "USD", h2.costCurrency())
	assert.Equal(t, "h2", h2.Label())
}

func TestDecodeHoldings_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"bad json", `{"id":`, `line 1`},
		{"unknown type", `{"id":"h1","type":"bond","currency":"USD"}`, `unknown asset type`},
		{"negative quantity", `{"id":"h1","type":"stock","quantity":-1,"currency":"USD"}`, `negative quantity`},
		{"missing currency", `{"id":"h1","type":"cash"}`, `missing currency`},
		{"duplicate", "{\"id\":\"h1\",\"type\":\"cash\",\"currency\":\"USD\"}\n{\"id\":\"h1\",\"type\":\"cash\",\"currency\":\"USD\"}", `line 2`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeHoldings("holdings.jsonl", strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Contains(t, err.Error(), "holdings.jsonl")
		})
	}
}

func TestDecodeLots(t *testing.T) {
	input := `{"id":"l1","holdingId":"h1","assetId":"btc","timestamp":"2024-01-02T10:00:00Z","qtyIn":"0.5","costBasisUsdTotal":20000,"source":"transfer"}
{"id":"l2","holdingId":"h1","assetId":"btc","timestamp":"2024-03-02T10:00:00Z","qtyIn":1,"source":"swap"}
`
	lots, err := DecodeLots("lots.jsonl", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.True(t, lots[0].QtyIn.Equal(Q(0.5)))
	require.NotNil(t, lots[0].CostBasisUSDTotal)
	assert.True(t, lots[0].CostBasisUSDTotal.Equal(USD(20000)))
	assert.Equal(t, TransferLot, lots[0].Source)
	assert.Nil(t, lots[1].CostBasisUSDTotal)
	assert.Equal(t, SwapLot, lots[1].Source)
	assert.Equal(t, 2024, lots[1].Timestamp.Year())
}

func TestDecodeLots_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"zero quantity", `{"id":"l1","holdingId":"h1","qtyIn":0,"source":"manual"}`, "qtyIn must be positive"},
		{"missing quantity", `{"id":"l1","holdingId":"h1","source":"manual"}`, "qtyIn must be positive"},
		{"negative cost", `{"id":"l1","holdingId":"h1","qtyIn":1,"costBasisUsdTotal":-3,"source":"manual"}`, "must not be negative"},
		{"unknown source", `{"id":"l1","holdingId":"h1","qtyIn":1,"source":"gift"}`, `unknown lot source "gift"`},
		{"several errors", `{"qtyIn":1,"source":"manual"}`, "missing holding id"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLots("lots.jsonl", strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDecodePrices(t *testing.T) {
	input := `{
		"ACME": {"price": 110, "currency": "usd", "previousClose": 100},
		"BTC": {"price": 60000, "currency": "USD", "changePercent": -2.5}
	}`
	prices, err := DecodePrices("prices.json", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, prices, 2)

	acme := prices.Lookup("ACME")
	require.NotNil(t, acme)
	assert.Equal(t, "ACME", acme.Symbol)
	assert.Equal(t, "USD", acme.Currency)
	require.NotNil(t, acme.PreviousClose)
	assert.Equal(t, 100.0, *acme.PreviousClose)
	assert.Nil(t, acme.ChangePercent)

	btc := prices.Lookup("BTC")
	require.NotNil(t, btc)
	require.NotNil(t, btc.ChangePercent)
	assert.Equal(t, -2.5, *btc.ChangePercent)

	assert.Nil(t, prices.Lookup("NOPE"))
	assert.Nil(t, prices.Lookup(""))

	_, err = DecodePrices("prices.json", strings.NewReader(`{"X": {"price": 0}}`))
	assert.ErrorContains(t, err, "must be positive")
}

func TestDecodeRates(t *testing.T) {
	rates, err := DecodeRates("rates.json", strings.NewReader(`{"usd": 1, "Eur": 0.9}`))
	require.NoError(t, err)
	assert.Equal(t, Rates{"USD": 1, "EUR": 0.9}, rates)

	_, err = DecodeRates("rates.json", strings.NewReader(`[1, 2]`))
	assert.ErrorContains(t, err, "rates.json")
}
