package folio

import (
	"cmp"
	"math"
	"slices"
)

// ChangeLabel describes what the day change of a portfolio is measured against.
type ChangeLabel string

const (
	// PricedAssets is used for mixed portfolios, or when no holding carries change data.
	PricedAssets ChangeLabel = "priced_assets"
	// PreviousCloseLabel is used when changes are measured from previous closes.
	PreviousCloseLabel ChangeLabel = "previous_close"
	// Last24hLabel is used when changes are measured over the last 24 hours.
	Last24hLabel ChangeLabel = "24h"
)

// PortfolioChange is the change of the portfolio value since the reference point.
type PortfolioChange struct {
	TotalNow float64
	TotalRef float64
	Pnl      float64
	Pct      float64 // ratio, 0.10 for +10%
	Label    ChangeLabel
}

// NewPortfolioChange computes the change of the portfolio since its
// reference point. It returns false when the reference total is not
// positive, as no meaningful change exists then.
func NewPortfolioChange(holdings []Holding, prices Prices, baseCurrency string, rates Rates) (PortfolioChange, bool) {
	return portfolioChange(valuations(holdings, prices, baseCurrency, rates))
}

func portfolioChange(vals []Valuation) (PortfolioChange, bool) {
	now, ref := totalCurrent(vals), totalReference(vals)
	if ref <= 0 {
		return PortfolioChange{}, false
	}
	pnl := now - ref
	return PortfolioChange{
		TotalNow: now,
		TotalRef: ref,
		Pnl:      pnl,
		Pct:      pnl / ref,
		Label:    changeLabel(vals),
	}, true
}

func changeLabel(vals []Valuation) ChangeLabel {
	var hasManual, hasPreviousClose, has24h bool
	for _, v := range vals {
		switch v.Kind {
		case Manual:
			hasManual = true
		case Listed:
			if v.Price.PreviousClose != nil {
				hasPreviousClose = true
			} else if v.Price.ChangePercent != nil {
				has24h = true
			}
		}
	}
	switch {
	case hasManual, hasPreviousClose && has24h:
		return PricedAssets
	case hasPreviousClose:
		return PreviousCloseLabel
	case has24h:
		return Last24hLabel
	default:
		return PricedAssets
	}
}

// AttributionRow is the contribution of one holding to the portfolio change.
type AttributionRow struct {
	Valuation
	NowValue        float64
	RefValue        float64
	ContributionAbs float64
	// ContributionPct is the share of the total change, in percent. It is 0
	// when the total change is 0.
	ContributionPct float64
	// ReturnPct is the holding's own change in percent, nil without a positive reference value.
	ReturnPct *float64
}

// Attribution decomposes the portfolio change into per holding contributions.
type Attribution struct {
	Rows     []AttributionRow
	TotalPnl float64
}

// AttributionFromChange computes the contribution of every holding to the
// portfolio change. Rows are sorted by decreasing absolute contribution. When
// TotalPnl is not zero, the ContributionPct of all rows sum to 100.
func AttributionFromChange(holdings []Holding, prices Prices, baseCurrency string, rates Rates) Attribution {
	return attribution(valuations(holdings, prices, baseCurrency, rates))
}

func attribution(vals []Valuation) Attribution {
	total := totalCurrent(vals) - totalReference(vals)
	rows := make([]AttributionRow, len(vals))
	for i, v := range vals {
		now, ref := v.Current(), v.Reference()
		row := AttributionRow{
			Valuation:       v,
			NowValue:        now,
			RefValue:        ref,
			ContributionAbs: now - ref,
		}
		if ref > 0 {
			row.ReturnPct = Num((now - ref) / ref * 100)
		}
		if total != 0 {
			row.ContributionPct = row.ContributionAbs / total * 100
		}
		rows[i] = row
	}
	slices.SortStableFunc(rows, func(a, b AttributionRow) int {
		return cmp.Compare(math.Abs(b.ContributionAbs), math.Abs(a.ContributionAbs))
	})
	return Attribution{Rows: rows, TotalPnl: total}
}

// InceptionReturn is the return since acquisition, measured against the cost basis.
type InceptionReturn struct {
	CurrentValue float64
	CostBasis    float64 // total, in base currency
	GainLoss     float64
	ReturnPct    float64
}

// HoldingInceptionReturn computes the return of h since acquisition. It
// returns false when h has no positive cost basis.
//
// The cost basis is per unit: it is multiplied by the quantity (1 when the
// holding has none) and converted from its own currency.
func HoldingInceptionReturn(h Holding, price *PriceResult, baseCurrency string, rates Rates) (InceptionReturn, bool) {
	return holdingInception(Valuate(h, price, baseCurrency, rates), baseCurrency, rates)
}

func holdingInception(v Valuation, baseCurrency string, rates Rates) (InceptionReturn, bool) {
	h := v.Holding
	if h.CostBasis == nil || *h.CostBasis <= 0 {
		return InceptionReturn{}, false
	}
	qty := 1.0
	if h.Quantity != nil {
		qty = *h.Quantity
	}
	cost := *h.CostBasis * qty * RateToBase(h.costCurrency(), baseCurrency, rates)
	now := v.Current()
	r := InceptionReturn{
		CurrentValue: now,
		CostBasis:    cost,
		GainLoss:     now - cost,
	}
	if cost != 0 {
		r.ReturnPct = r.GainLoss / cost * 100
	}
	return r, true
}

// PortfolioInceptionReturn aggregates the inception return of the holdings
// that have a cost basis, the others are left out entirely. It returns false
// when no holding has a cost basis or the aggregated cost is not positive.
func PortfolioInceptionReturn(holdings []Holding, prices Prices, baseCurrency string, rates Rates) (InceptionReturn, bool) {
	var total InceptionReturn
	found := false
	for _, v := range valuations(holdings, prices, baseCurrency, rates) {
		r, ok := holdingInception(v, baseCurrency, rates)
		if !ok {
			continue
		}
		found = true
		total.CurrentValue += r.CurrentValue
		total.CostBasis += r.CostBasis
	}
	if !found || total.CostBasis <= 0 {
		return InceptionReturn{}, false
	}
	total.GainLoss = total.CurrentValue - total.CostBasis
	total.ReturnPct = total.GainLoss / total.CostBasis * 100
	return total, true
}
