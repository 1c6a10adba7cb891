package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioTotalBase_Empty(t *testing.T) {
	assert.Equal(t, 0.0, PortfolioTotalBase(nil, Prices{}, "USD", nil))
	assert.Equal(t, 0.0, PortfolioTotalRef([]Holding{}, nil, "USD", nil))
}

func TestPortfolioTotals(t *testing.T) {
	holdings := []Holding{
		listed("a", Stock, "A", 10),
		listed("b", Crypto, "BTC", 0.5),
		manual("c", Cash, 1000),
		listed("d", Stock, "UNPRICED", 3),
	}
	prices := pricesOf(quote("A", 110, 100), quote24h("BTC", 50000, 25))

	assert.InDelta(t, 1100+25000+1000, PortfolioTotalBase(holdings, prices, "USD", nil), 1e-6)
	assert.InDelta(t, 1000+20000+1000, PortfolioTotalRef(holdings, prices, "USD", nil), 1e-6)
}

func TestHoldingsWithValues(t *testing.T) {
	holdings := []Holding{
		manual("small", Cash, 100),
		listed("big", Stock, "A", 10),
		manual("tie1", Other, 300),
		manual("tie2", Other, 300),
		listed("none", Stock, "UNPRICED", 3),
	}
	prices := pricesOf(flat("A", 30))

	rows := HoldingsWithValues(holdings, prices, "USD", nil)
	require.Len(t, rows, 5)

	var ids []string
	var sum float64
	for _, r := range rows {
		ids = append(ids, r.Holding.ID)
		sum += r.WeightPercent
	}
	// ties keep their input order.
	assert.Equal(t, []string{"big", "tie1", "tie2", "small", "none"}, ids)
	assert.InDelta(t, 100.0, sum, 1e-6)
	assert.InDelta(t, 300.0/1000*100, rows[0].WeightPercent, 1e-9)
	assert.Equal(t, 0.0, rows[4].WeightPercent)
}

func TestHoldingsWithValues_ZeroTotal(t *testing.T) {
	holdings := []Holding{
		listed("a", Stock, "A", 10),
		manual("b", Cash, 0),
	}
	rows := HoldingsWithValues(holdings, nil, "USD", nil)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 0.0, r.WeightPercent, r.Holding.ID)
	}
}

func TestAllocationByAssetClass(t *testing.T) {
	holdings := []Holding{
		manual("cash", Cash, 100),
		listed("a", Stock, "A", 2),
		listed("b", Stock, "B", 1),
		listed("btc", Crypto, "BTC", 1),
		listed("unpriced", ETF, "U", 1),
	}
	prices := pricesOf(flat("A", 200), flat("B", 200), flat("BTC", 300))

	got := AllocationByAssetClass(holdings, prices, "USD", nil)
	want := []AllocationSlice{
		{Type: Stock, Value: 600, Percent: 60, Holdings: 2},
		{Type: Crypto, Value: 300, Percent: 30, Holdings: 1},
		{Type: Cash, Value: 100, Percent: 10, Holdings: 1},
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.Equal(t, want[i].Holdings, got[i].Holdings)
		assert.InDelta(t, want[i].Value, got[i].Value, 1e-9)
		assert.InDelta(t, want[i].Percent, got[i].Percent, 1e-9)
	}
}

func TestAllocationByAssetClass_Empty(t *testing.T) {
	assert.Empty(t, AllocationByAssetClass(nil, nil, "USD", nil))
}
