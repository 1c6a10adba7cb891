package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/folio"
)

// Transaction renders a transaction to a one line summary.
func Transaction(tx folio.Transaction) string {
	switch tx.Type {
	case folio.SellTransaction:
		qty := "?"
		if tx.Quantity != nil {
			qty = tx.Quantity.String()
		}
		return fmt.Sprintf("Sold %s of %s for %s", qty, tx.HoldingID, tx.TotalAmount)
	case folio.DividendTransaction:
		return fmt.Sprintf("Dividend of %s for %s", tx.TotalAmount, tx.HoldingID)
	default:
		return string(tx.Type)
	}
}

// TransactionMarkdown renders a recorded transaction with the lots it consumed.
func TransactionMarkdown(tx folio.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Transaction(tx))

	fmt.Fprintln(&b, "| Field | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	if tx.ID != "" {
		fmt.Fprintf(&b, "| ID | %s |\n", tx.ID)
	}
	fmt.Fprintf(&b, "| Date | %s |\n", tx.Date.UTC().Format("2006-01-02"))
	if tx.Quantity != nil {
		fmt.Fprintf(&b, "| Quantity | %s |\n", tx.Quantity)
	}
	if tx.PricePerUnit != nil {
		fmt.Fprintf(&b, "| Price | %s |\n", tx.PricePerUnit)
	}
	fmt.Fprintf(&b, "| Amount | %s |\n", tx.TotalAmount)
	if tx.Type == folio.SellTransaction {
		gain := "unknown"
		if tx.RealizedGainLoss != nil {
			gain = tx.RealizedGainLoss.SignedString()
		}
		fmt.Fprintf(&b, "| Realized Gain/Loss | %s |\n", gain)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Consumed Lots\n\n")
		fmt.Fprintln(w, "| Lot | Quantity | Cost |")
		fmt.Fprintln(w, "|:---|---:|---:|")
		for _, c := range tx.ConsumedLots {
			cost := "unknown"
			if c.CostKnown {
				cost = c.CostConsumed.String()
			}
			fmt.Fprintf(w, "| %s | %s | %s |\n", cell(c.LotID), c.QtyConsumed, cost)
		}
		return len(tx.ConsumedLots) > 0
	})
	return b.String()
}

// LotsMarkdown renders the open lots of a holding.
func LotsMarkdown(holdingID string, balances []folio.LotBalance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Lots of %s\n\n", holdingID)
	fmt.Fprintln(&b, "| Lot | Acquired | Source | Quantity | Open | Open Cost |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")
	for _, l := range balances {
		cost := "unknown"
		if l.OpenCost != nil {
			cost = l.OpenCost.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(l.ID),
			l.Timestamp.UTC().Format("2006-01-02"),
			l.Source,
			l.QtyIn,
			l.Open,
			cost,
		)
	}
	fmt.Fprintf(&b, "| **%s** | | | | **%s** | |\n", "Total", folio.OpenQuantity(balances))
	return b.String()
}
