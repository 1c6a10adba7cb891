package folio

import (
	"gonum.org/v1/gonum/floats"
)

// Diversification thresholds on the HHI.
const (
	wellDiversifiedHHI        = 1500
	moderatelyConcentratedHHI = 2500
)

// Diversification labels.
const (
	WellDiversified        = "Well diversified"
	ModeratelyConcentrated = "Moderately concentrated"
	HighlyConcentrated     = "Highly concentrated"
)

// PortfolioStats summarizes the portfolio value, cost, concentration and day change.
type PortfolioStats struct {
	TotalValue float64

	// TotalCostBasis sums the holdings' CostBasis as is, without multiplying by
	// the quantity, unlike HoldingInceptionReturn.
	TotalCostBasis   float64
	TotalGainLoss    float64
	TotalGainLossPct float64

	HoldingCount    int
	PricedCount     int // valued from a quote
	ManualCount     int // valued from a manual value
	UnpricedCount   int // listed, with a quantity, but no price
	AssetClassCount int

	TopHoldingName   string
	TopHoldingWeight float64
	Top3Weight       float64

	// HHI is the Herfindahl-Hirschman Index of the weights, in [0, 10000].
	HHI             float64
	Diversification string

	// DayChangePnl and DayChangePct are nil when the portfolio has no reference value.
	DayChangePnl *float64
	DayChangePct *float64
}

// ComputePortfolioStats computes the statistics of the portfolio.
func ComputePortfolioStats(holdings []Holding, prices Prices, baseCurrency string, rates Rates) PortfolioStats {
	vals := valuations(holdings, prices, baseCurrency, rates)
	rows := withValues(vals)

	s := PortfolioStats{
		TotalValue:      totalCurrent(vals),
		HoldingCount:    len(holdings),
		AssetClassCount: len(allocation(rows)),
	}

	for _, v := range vals {
		switch v.Kind {
		case Listed:
			s.PricedCount++
		case Manual:
			s.ManualCount++
		}
		if v.IsPriceUnavailable() {
			s.UnpricedCount++
		}
		h := v.Holding
		if h.CostBasis != nil {
			s.TotalCostBasis += *h.CostBasis * RateToBase(h.costCurrency(), baseCurrency, rates)
		}
	}
	if s.TotalCostBasis > 0 {
		s.TotalGainLoss = s.TotalValue - s.TotalCostBasis
		s.TotalGainLossPct = s.TotalGainLoss / s.TotalCostBasis * 100
	}

	weights := make([]float64, len(rows))
	for i, r := range rows {
		weights[i] = r.WeightPercent
	}
	if len(rows) > 0 {
		s.TopHoldingName = rows[0].Holding.Label()
		s.TopHoldingWeight = rows[0].WeightPercent
		s.Top3Weight = floats.Sum(weights[:min(3, len(weights))])
	}
	s.HHI = HHI(weights)
	s.Diversification = DiversificationLabel(s.HHI)

	if change, ok := portfolioChange(vals); ok {
		s.DayChangePnl = Num(change.Pnl)
		s.DayChangePct = Num(change.Pct)
	}
	return s
}

// HHI returns the Herfindahl-Hirschman Index of weights expressed in percent:
// the sum of the squared fractional weights, times 10000.
func HHI(weightsPercent []float64) float64 {
	if len(weightsPercent) == 0 {
		return 0
	}
	w := make([]float64, len(weightsPercent))
	for i, p := range weightsPercent {
		w[i] = p / 100
	}
	return floats.Dot(w, w) * 10000
}

// DiversificationLabel classifies an HHI value.
func DiversificationLabel(hhi float64) string {
	switch {
	case hhi < wellDiversifiedHHI:
		return WellDiversified
	case hhi < moderatelyConcentratedHHI:
		return ModeratelyConcentrated
	default:
		return HighlyConcentrated
	}
}
