package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/folio"
)

// ChangeLabel returns the human readable form of a change label.
func ChangeLabel(l folio.ChangeLabel) string {
	switch l {
	case folio.PreviousCloseLabel:
		return "Since previous close"
	case folio.Last24hLabel:
		return "Last 24 hours"
	default:
		return "Priced assets"
	}
}

// ChangeMarkdown renders the portfolio change. ok is false when the change
// is undefined, a placeholder is rendered instead.
func ChangeMarkdown(c folio.PortfolioChange, ok bool, baseCurrency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Portfolio Change\n\n")
	if !ok {
		fmt.Fprintln(&b, "No reference value to compare to.")
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n\n", ChangeLabel(c.Label))
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Current Value | %s |\n", money(c.TotalNow, baseCurrency))
	fmt.Fprintf(&b, "| Reference Value | %s |\n", money(c.TotalRef, baseCurrency))
	fmt.Fprintf(&b, "| Change | %s |\n", money(c.Pnl, baseCurrency).SignedString())
	fmt.Fprintf(&b, "| Return | %s |\n", folio.Percent(c.Pct*100).SignedString())
	return b.String()
}

// AttributionMarkdown renders the contribution of each holding to the change.
// Holdings with no value now nor at the reference are skipped.
func AttributionMarkdown(a folio.Attribution, baseCurrency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Change Attribution\n\n")
	fmt.Fprintln(&b, "| Holding | Reference | Current | Change | Return | Contribution |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, r := range a.Rows {
		if r.NowValue == 0 && r.RefValue == 0 {
			continue
		}
		ret := "-"
		if r.ReturnPct != nil {
			ret = folio.Percent(*r.ReturnPct).SignedString()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(r.Holding.Label()),
			money(r.RefValue, baseCurrency),
			money(r.NowValue, baseCurrency),
			money(r.ContributionAbs, baseCurrency).SignedString(),
			ret,
			folio.Percent(r.ContributionPct),
		)
	}
	fmt.Fprintf(&b, "| **%s** | | | **%s** | | |\n", "Total", money(a.TotalPnl, baseCurrency).SignedString())
	return b.String()
}

// InceptionMarkdown renders the return since acquisition of the holdings
// with a cost basis, and of the portfolio.
func InceptionMarkdown(holdings []folio.Holding, prices folio.Prices, baseCurrency string, rates folio.Rates) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Return Since Inception\n\n")

	total, ok := folio.PortfolioInceptionReturn(holdings, prices, baseCurrency, rates)
	if !ok {
		fmt.Fprintln(&b, "No holding has a cost basis.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Holding | Cost Basis | Current | Gain/Loss | Return |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, h := range holdings {
		r, ok := folio.HoldingInceptionReturn(h, prices.For(h), baseCurrency, rates)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell(h.Label()),
			money(r.CostBasis, baseCurrency),
			money(r.CurrentValue, baseCurrency),
			money(r.GainLoss, baseCurrency).SignedString(),
			folio.Percent(r.ReturnPct).SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **%s** | **%s** | **%s** | **%s** | **%s** |\n",
		"Total",
		money(total.CostBasis, baseCurrency),
		money(total.CurrentValue, baseCurrency),
		money(total.GainLoss, baseCurrency).SignedString(),
		folio.Percent(total.ReturnPct).SignedString(),
	)
	return b.String()
}
