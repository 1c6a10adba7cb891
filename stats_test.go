package folio

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equalHoldings returns n manual holdings of the same value.
func equalHoldings(n int) []Holding {
	holdings := make([]Holding, n)
	for i := range holdings {
		holdings[i] = manual(fmt.Sprintf("h%d", i), Other, 100)
	}
	return holdings
}

func TestComputePortfolioStats_SingleHolding(t *testing.T) {
	holdings := []Holding{listed("a", Stock, "ACME", 10)}
	prices := pricesOf(quote("ACME", 110, 100))

	s := ComputePortfolioStats(holdings, prices, "USD", nil)
	assert.Equal(t, 10000.0, s.HHI)
	assert.Equal(t, HighlyConcentrated, s.Diversification)
	assert.Equal(t, 100.0, s.TopHoldingWeight)
	assert.Equal(t, 100.0, s.Top3Weight)
	assert.Equal(t, "ACME", s.TopHoldingName)
	require.NotNil(t, s.DayChangePnl)
	require.NotNil(t, s.DayChangePct)
	assert.Equal(t, 100.0, *s.DayChangePnl)
	assert.InDelta(t, 0.10, *s.DayChangePct, 1e-12)
}

func TestComputePortfolioStats_Diversification(t *testing.T) {
	testCases := []struct {
		n       int
		hhi     float64
		label   string
		top3    float64
		topName string
	}{
		{10, 1000, WellDiversified, 30, "h0"},
		{5, 2000, ModeratelyConcentrated, 60, "h0"},
		{4, 2500, HighlyConcentrated, 75, "h0"},
		{2, 5000, HighlyConcentrated, 100, "h0"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d holdings", tc.n), func(t *testing.T) {
			s := ComputePortfolioStats(equalHoldings(tc.n), nil, "USD", nil)
			assert.InDelta(t, tc.hhi, s.HHI, 1e-6)
			assert.Equal(t, tc.label, s.Diversification)
			assert.InDelta(t, tc.top3, s.Top3Weight, 1e-9)
			assert.Equal(t, tc.topName, s.TopHoldingName)
		})
	}
}

func TestComputePortfolioStats_Empty(t *testing.T) {
	s := ComputePortfolioStats(nil, nil, "USD", nil)
	assert.Equal(t, 0.0, s.TotalValue)
	assert.Equal(t, 0.0, s.HHI)
	assert.Equal(t, WellDiversified, s.Diversification)
	assert.Equal(t, "", s.TopHoldingName)
	assert.Nil(t, s.DayChangePnl)
	assert.Nil(t, s.DayChangePct)
	assert.Equal(t, 0, s.HoldingCount)
}

func TestComputePortfolioStats_CostBasisIsNotMultipliedByQuantity(t *testing.T) {
	stock := listed("s", Stock, "S", 10)
	stock.CostBasis = Num(50)
	prices := pricesOf(flat("S", 60))

	s := ComputePortfolioStats([]Holding{stock}, prices, "USD", nil)
	assert.Equal(t, 600.0, s.TotalValue)
	assert.Equal(t, 50.0, s.TotalCostBasis)
	assert.Equal(t, 550.0, s.TotalGainLoss)
	assert.InDelta(t, 1100.0, s.TotalGainLossPct, 1e-9)
}

func TestComputePortfolioStats_NoCostBasis(t *testing.T) {
	s := ComputePortfolioStats([]Holding{manual("c", Cash, 100)}, nil, "USD", nil)
	assert.Equal(t, 0.0, s.TotalCostBasis)
	assert.Equal(t, 0.0, s.TotalGainLoss)
	assert.Equal(t, 0.0, s.TotalGainLossPct)
}

func TestComputePortfolioStats_Counts(t *testing.T) {
	eurHouse := manual("house", RealEstate, 1000)
	eurHouse.Currency = "EUR"
	eurHouse.CostBasis = Num(100)
	eurHouse.CostBasisCurrency = "GBP"

	holdings := []Holding{
		listed("a", Stock, "A", 1),
		listed("b", Stock, "B", 1),
		listed("c", Crypto, "C", 2),
		manual("cash", Cash, 10),
		eurHouse,
		listed("zero", ETF, "Z", 0),
	}
	prices := pricesOf(flat("A", 10))

	s := ComputePortfolioStats(holdings, prices, "USD", nil)
	assert.Equal(t, 6, s.HoldingCount)
	assert.Equal(t, 1, s.PricedCount)
	assert.Equal(t, 2, s.ManualCount)
	assert.Equal(t, 2, s.UnpricedCount, "b and c, zero has no quantity to price")
	assert.Equal(t, 3, s.AssetClassCount)
	assert.InDelta(t, 127.0, s.TotalCostBasis, 1e-9)
	assert.Equal(t, "house", s.TopHoldingName)
}

func TestHHI(t *testing.T) {
	assert.Equal(t, 0.0, HHI(nil))
	assert.Equal(t, 10000.0, HHI([]float64{100}))
	assert.InDelta(t, 5000.0, HHI([]float64{50, 50}), 1e-9)

	for _, weights := range [][]float64{
		{70, 20, 10},
		{1, 1, 1, 97},
		{0, 0, 100},
		{33.3, 33.3, 33.4},
	} {
		hhi := HHI(weights)
		assert.GreaterOrEqual(t, hhi, 0.0)
		assert.LessOrEqual(t, hhi, 10000.0+1e-9)
	}
}

func TestDiversificationLabel(t *testing.T) {
	assert.Equal(t, WellDiversified, DiversificationLabel(1499.99))
	assert.Equal(t, ModeratelyConcentrated, DiversificationLabel(1500))
	assert.Equal(t, ModeratelyConcentrated, DiversificationLabel(2499.99))
	assert.Equal(t, HighlyConcentrated, DiversificationLabel(2500))
}
