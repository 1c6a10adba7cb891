package renderer

import "github.com/etnz/folio"

// Stats is the statistics report.
type Stats struct {
	folio.PortfolioStats
	BaseCurrency string
}

// Money returns v in the base currency, for the template.
func (s Stats) Money(v float64) folio.Money { return money(v, s.BaseCurrency) }

// SignedMoney returns v in the base currency with a sign, for the template.
func (s Stats) SignedMoney(v float64) string { return money(v, s.BaseCurrency).SignedString() }

const statsTemplate = `# Portfolio Statistics

## Value

| Metric | Value |
|:---|---:|
| Total Value | {{ .Money .TotalValue }} |
{{- if gt .TotalCostBasis 0.0 }}
| Cost Basis | {{ .Money .TotalCostBasis }} |
| Gain/Loss | {{ .SignedMoney .TotalGainLoss }} |
| Return | {{ signed .TotalGainLossPct }} |
{{- end }}
{{- if .DayChangePnl }}
| Day Change | {{ .SignedMoney (deref .DayChangePnl) }} |
| Day Return | {{ signed (hundred .DayChangePct) }} |
{{- end }}

## Holdings

| Metric | Count |
|:---|---:|
| Holdings | {{ .HoldingCount }} |
| Priced | {{ .PricedCount }} |
| Manual | {{ .ManualCount }} |
| Price unavailable | {{ .UnpricedCount }} |
| Asset classes | {{ .AssetClassCount }} |

## Concentration

| Metric | Value |
|:---|---:|
{{- if .TopHoldingName }}
| Top Holding | {{ .TopHoldingName }} ({{ pct .TopHoldingWeight }}) |
| Top 3 Weight | {{ pct .Top3Weight }} |
{{- end }}
| HHI | {{ printf "%.0f" .HHI }} |
| Diversification | {{ .Diversification }} |
`

// StatsMarkdown renders the portfolio statistics.
func StatsMarkdown(s folio.PortfolioStats, baseCurrency string) string {
	s.TopHoldingName = cell(s.TopHoldingName)
	return renderTemplate("stats", statsTemplate, Stats{PortfolioStats: s, BaseCurrency: baseCurrency})
}
