package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// reportCmd is a report computed from the portfolio in a single pass.
type reportCmd struct {
	name, synopsis, usage string
	render                func(p *portfolio) string
}

func (c *reportCmd) Name() string     { return c.name }
func (c *reportCmd) Synopsis() string { return c.synopsis }
func (c *reportCmd) Usage() string    { return c.usage }

func (c *reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := a.loadPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(c.render(p))
	return subcommands.ExitSuccess
}

func newHoldingsCmd() *reportCmd {
	return &reportCmd{
		name:     "holdings",
		synopsis: "display holdings with their value and weight",
		usage: `fol holdings

  Displays every holding valued in the base currency, by decreasing value.
  Listed holdings without a price are shown as "Price unavailable".
`,
		render: func(p *portfolio) string {
			return renderer.RenderHoldings(renderer.NewHoldings(p.Holdings, p.Prices, p.Base, p.Rates))
		},
	}
}

func newAllocationCmd() *reportCmd {
	return &reportCmd{
		name:     "allocation",
		synopsis: "display the allocation by asset class",
		usage: `fol allocation

  Displays the value and weight of each asset class.
`,
		render: func(p *portfolio) string {
			return renderer.AllocationMarkdown(folio.AllocationByAssetClass(p.Holdings, p.Prices, p.Base, p.Rates), p.Base)
		},
	}
}

func newChangeCmd() *reportCmd {
	return &reportCmd{
		name:     "change",
		synopsis: "display the change of the portfolio value",
		usage: `fol change

  Displays the change of the portfolio value since the previous close or
  over the last 24 hours, depending on the available quotes.
`,
		render: func(p *portfolio) string {
			change, ok := folio.NewPortfolioChange(p.Holdings, p.Prices, p.Base, p.Rates)
			return renderer.ChangeMarkdown(change, ok, p.Base)
		},
	}
}

func newAttributionCmd() *reportCmd {
	return &reportCmd{
		name:     "attribution",
		synopsis: "display the contribution of each holding to the change",
		usage: `fol attribution

  Decomposes the change of the portfolio value per holding, largest
  contributions first.
`,
		render: func(p *portfolio) string {
			return renderer.AttributionMarkdown(folio.AttributionFromChange(p.Holdings, p.Prices, p.Base, p.Rates), p.Base)
		},
	}
}

func newStatsCmd() *reportCmd {
	return &reportCmd{
		name:     "stats",
		synopsis: "display portfolio statistics",
		usage: `fol stats

  Displays the total value, cost basis, day change, counts and concentration
  (HHI) of the portfolio.
`,
		render: func(p *portfolio) string {
			return renderer.StatsMarkdown(folio.ComputePortfolioStats(p.Holdings, p.Prices, p.Base, p.Rates), p.Base)
		},
	}
}

func newInceptionCmd() *reportCmd {
	return &reportCmd{
		name:     "inception",
		synopsis: "display the return since acquisition",
		usage: `fol inception

  Displays the gain or loss of the holdings with a cost basis, and of the
  portfolio.
`,
		render: func(p *portfolio) string {
			return renderer.InceptionMarkdown(p.Holdings, p.Prices, p.Base, p.Rates)
		},
	}
}
