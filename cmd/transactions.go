package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// record assigns an ID to tx, appends it to the transactions file, unless
// dryRun, and prints it.
func record(a *app, tx folio.Transaction, dryRun bool) subcommands.ExitStatus {
	tx.ID = uuid.NewString()
	if !dryRun {
		if err := a.appendTransaction(tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.TransactionMarkdown(tx))
	return subcommands.ExitSuccess
}

// parseAmount parses a decimal amount given on the command line.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	holding  string
	quantity string
	price    string
	currency string
	strict   bool
	dryRun   bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units of a holding, matching lots first in first out" }
func (*sellCmd) Usage() string {
	return `fol sell -h <holding> -q <quantity> -p <price> [-c <currency>] [-d <date>] [-strict] [-n]

  Sells units of a holding. The quantity is matched against the open lots of
  the holding, oldest first, to compute the realized gain or loss. Lots
  already consumed by recorded sells are not matched again.

  Without -strict, selling more than the open lots hold only records what
  they could fill. Nothing is recorded when the holding has no open lot.

  Lot costs are in USD, a price in another currency is converted with the
  configured rates; the amounts and the gain are recorded in that currency.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD, today, yesterday, -Nd)")
	f.StringVar(&c.holding, "h", "", "Holding ID")
	f.StringVar(&c.quantity, "q", "", "Quantity sold")
	f.StringVar(&c.price, "p", "", "Price per unit")
	f.StringVar(&c.currency, "c", folio.USDCode, "Currency of the price")
	f.BoolVar(&c.strict, "strict", false, "Fail when selling more than the open lots hold")
	f.BoolVar(&c.dryRun, "n", false, "Print the transaction without recording it")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" || c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	qty, err := parseAmount(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := parseAmount(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	cur := strings.ToUpper(c.currency)
	if err := folio.ValidateCurrency(cur); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing currency: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	lots, txs, err := a.loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	open := folio.OpenLots(lots, txs, c.holding)
	if c.strict {
		var held folio.Quantity
		for _, l := range open {
			held = held.Add(l.QtyIn)
		}
		if err := folio.ValidateSell(held, folio.Q(qty)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	rates, err := a.loadRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if cur != folio.USDCode && !rates.HasLive(cur, folio.USDCode) {
		a.log.Warn().Str("currency", cur).Msg("using fallback FX rate to match USD lot costs")
	}

	tx, err := folio.NewSell(c.holding, open, folio.Q(qty), folio.M(price, cur), rates, day.Time())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating sell: %v\n", err)
		return subcommands.ExitFailure
	}
	if !tx.Quantity.Equal(folio.Q(qty)) {
		a.log.Warn().Str("holding", c.holding).Stringer("requested", folio.Q(qty)).Stringer("filled", tx.Quantity).Msg("sell exceeds open lots")
	}
	return record(a, tx, c.dryRun)
}

// --- Dividend Command ---

type dividendCmd struct {
	date     string
	holding  string
	amount   string
	currency string
	dryRun   bool
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend received for a holding" }
func (*dividendCmd) Usage() string {
	return `fol dividend -h <holding> -a <amount> [-c <currency>] [-d <date>] [-n]

  Records a dividend received for a holding.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD, today, yesterday, -Nd)")
	f.StringVar(&c.holding, "h", "", "Holding ID")
	f.StringVar(&c.amount, "a", "", "Total amount received")
	f.StringVar(&c.currency, "c", folio.USDCode, "Currency of the amount")
	f.BoolVar(&c.dryRun, "n", false, "Print the transaction without recording it")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	cur := strings.ToUpper(c.currency)
	if err := folio.ValidateCurrency(cur); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing currency: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx, err := folio.NewDividend(c.holding, folio.M(amount, cur), day.Time())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating dividend: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	return record(a, tx, c.dryRun)
}

// --- Lots Command ---

type lotsCmd struct {
	holding string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the open lots of a holding" }
func (*lotsCmd) Usage() string {
	return `fol lots -h <holding>

  Displays the lots of a holding still open after the recorded sells.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.holding, "h", "", "Holding ID")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.holding == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	lots, txs, err := a.loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	balances := folio.RemainingLots(folio.LotsFor(lots, c.holding), folio.Consumed(txs, c.holding))
	printMarkdown(renderer.LotsMarkdown(c.holding, balances))
	return subcommands.ExitSuccess
}
