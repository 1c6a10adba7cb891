package folio

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// PortfolioTotalBase returns the sum of the holdings' current values in baseCurrency.
func PortfolioTotalBase(holdings []Holding, prices Prices, baseCurrency string, rates Rates) float64 {
	return totalCurrent(valuations(holdings, prices, baseCurrency, rates))
}

// PortfolioTotalRef returns the sum of the holdings' reference values in baseCurrency.
func PortfolioTotalRef(holdings []Holding, prices Prices, baseCurrency string, rates Rates) float64 {
	return totalReference(valuations(holdings, prices, baseCurrency, rates))
}

func totalCurrent(vals []Valuation) float64 {
	xs := make([]float64, len(vals))
	for i, v := range vals {
		xs[i] = v.Current()
	}
	return floats.Sum(xs)
}

func totalReference(vals []Valuation) float64 {
	xs := make([]float64, len(vals))
	for i, v := range vals {
		xs[i] = v.Reference()
	}
	return floats.Sum(xs)
}

// HoldingWithValue is a holding with its value and weight in the portfolio.
type HoldingWithValue struct {
	Valuation
	ValueBase     float64
	WeightPercent float64 // 0..100
}

// HoldingsWithValues values every holding and computes its weight in the
// total. Rows are sorted by decreasing value; equal values keep their input
// order. Weights are all 0 when the total is 0.
func HoldingsWithValues(holdings []Holding, prices Prices, baseCurrency string, rates Rates) []HoldingWithValue {
	return withValues(valuations(holdings, prices, baseCurrency, rates))
}

func withValues(vals []Valuation) []HoldingWithValue {
	total := totalCurrent(vals)
	rows := make([]HoldingWithValue, len(vals))
	for i, v := range vals {
		rows[i] = HoldingWithValue{
			Valuation:     v,
			ValueBase:     v.Current(),
			WeightPercent: percentOf(v.Current(), total),
		}
	}
	slices.SortStableFunc(rows, func(a, b HoldingWithValue) int {
		return cmp.Compare(b.ValueBase, a.ValueBase)
	})
	return rows
}

// percentOf returns part/total in percent, and 0 when total is 0.
func percentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// AllocationSlice is the share of one asset class in the portfolio.
type AllocationSlice struct {
	Type     AssetType
	Value    float64
	Percent  float64 // 0..100
	Holdings int
}

// AllocationByAssetClass groups the valued holdings by asset class. Slices
// are sorted by decreasing value, ties in AssetTypes order.
func AllocationByAssetClass(holdings []Holding, prices Prices, baseCurrency string, rates Rates) []AllocationSlice {
	return allocation(withValues(valuations(holdings, prices, baseCurrency, rates)))
}

func allocation(rows []HoldingWithValue) []AllocationSlice {
	byType := make(map[AssetType]*AllocationSlice)
	var total float64
	for _, r := range rows {
		if r.ValueBase <= 0 {
			continue
		}
		s, ok := byType[r.Holding.Type]
		if !ok {
			s = &AllocationSlice{Type: r.Holding.Type}
			byType[r.Holding.Type] = s
		}
		s.Value += r.ValueBase
		s.Holdings++
		total += r.ValueBase
	}

	out := make([]AllocationSlice, 0, len(byType))
	for _, t := range assetTypeOrder(byType) {
		s := byType[t]
		s.Percent = percentOf(s.Value, total)
		out = append(out, *s)
	}
	sortAllocation(out)
	return out
}

// assetTypeOrder returns the keys of byType, known asset types first in
// AssetTypes order, unknown ones after.
func assetTypeOrder(byType map[AssetType]*AllocationSlice) []AssetType {
	order := make([]AssetType, 0, len(byType))
	for _, t := range AssetTypes {
		if _, ok := byType[t]; ok {
			order = append(order, t)
		}
	}
	var unknown []AssetType
	for t := range byType {
		if !slices.Contains(AssetTypes, t) {
			unknown = append(unknown, t)
		}
	}
	slices.Sort(unknown)
	return append(order, unknown...)
}

func sortAllocation(s []AllocationSlice) {
	slices.SortStableFunc(s, func(a, b AllocationSlice) int {
		return cmp.Compare(b.Value, a.Value)
	})
}
