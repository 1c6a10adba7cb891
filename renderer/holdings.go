package renderer

import (
	"github.com/etnz/folio"
)

// Holdings is the holdings report: every holding with its value and weight.
type Holdings struct {
	BaseCurrency string       `json:"baseCurrency"`
	Total        folio.Money  `json:"total"`
	Unpriced     int          `json:"unpriced"`
	Rows         []HoldingRow `json:"rows"`
}

// HoldingRow is one line of the holdings report.
type HoldingRow struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Symbol   string  `json:"symbol,omitempty"`
	Quantity string  `json:"quantity,omitempty"`
	Value    string  `json:"value"`
	Weight   float64 `json:"weight"`
}

// NewHoldings builds the holdings report, by decreasing value.
func NewHoldings(holdings []folio.Holding, prices folio.Prices, baseCurrency string, rates folio.Rates) *Holdings {
	r := &Holdings{
		BaseCurrency: baseCurrency,
		Total:        money(folio.PortfolioTotalBase(holdings, prices, baseCurrency, rates), baseCurrency),
		Rows:         make([]HoldingRow, 0, len(holdings)),
	}
	for _, hv := range folio.HoldingsWithValues(holdings, prices, baseCurrency, rates) {
		if hv.IsPriceUnavailable() {
			r.Unpriced++
		}
		r.Rows = append(r.Rows, HoldingRow{
			Name:     cell(hv.Holding.Label()),
			Type:     string(hv.Holding.Type),
			Symbol:   cell(hv.Holding.Symbol),
			Quantity: quantity(hv.Holding.Quantity),
			Value:    hv.Display(baseCurrency),
			Weight:   hv.WeightPercent,
		})
	}
	return r
}

const holdingsTemplate = `# Holdings

Total Portfolio Value: **{{ .Total }}**
{{- if .Unpriced }}

{{ .Unpriced }} holding(s) could not be priced and are not counted in the total.
{{- end }}

| Holding | Type | Symbol | Quantity | Value | Weight |
|:---|:---|:---|---:|---:|---:|
{{- range .Rows }}
| {{ .Name }} | {{ .Type }} | {{ .Symbol }} | {{ .Quantity }} | {{ .Value }} | {{ pct .Weight }} |
{{- end }}
| **Total** | | | | **{{ .Total }}** | |
`

// RenderHoldings renders the holdings report to markdown.
func RenderHoldings(h *Holdings) string {
	return renderTemplate("holdings", holdingsTemplate, h)
}
