package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/folio"
)

// AllocationMarkdown renders the allocation by asset class.
func AllocationMarkdown(slices []folio.AllocationSlice, baseCurrency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Allocation by Asset Class\n\n")
	if len(slices) == 0 {
		fmt.Fprintln(&b, "No valued holdings.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset Class | Holdings | Value | Weight |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	var total float64
	for _, s := range slices {
		total += s.Value
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			s.Type,
			s.Holdings,
			money(s.Value, baseCurrency),
			folio.Percent(s.Percent),
		)
	}
	fmt.Fprintf(&b, "| **%s** | | **%s** | |\n", "Total", money(total, baseCurrency))
	return b.String()
}
