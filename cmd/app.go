// Package cmd implements the fol CLI application to value a portfolio.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/quotes"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(newHoldingsCmd(), "reports")
	c.Register(newAllocationCmd(), "reports")
	c.Register(newChangeCmd(), "reports")
	c.Register(newAttributionCmd(), "reports")
	c.Register(newStatsCmd(), "reports")
	c.Register(newInceptionCmd(), "reports")

	c.Register(&sellCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&lotsCmd{}, "transactions")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile       = flag.String("config", "folio.toml", "Path to the TOML configuration file")
	baseCurrency     = flag.String("base", "", "Base currency of the reports, overrides the configuration")
	holdingsFile     = flag.String("holdings", "", "Path to the holdings file (JSONL format)")
	pricesFile       = flag.String("prices", "", "Path to the prices file (JSON format)")
	ratesFile        = flag.String("rates", "", "Path to the FX rates file (JSON format)")
	lotsFile         = flag.String("lots", "", "Path to the lots file (JSONL format)")
	transactionsFile = flag.String("transactions", "", "Path to the transactions file (JSONL format)")
	plainOutput      = flag.Bool("plain", false, "Print reports as raw markdown")
)

// app is the state shared by the commands: configuration and logger.
type app struct {
	config *Config
	log    zerolog.Logger
	now    quotes.Clock
}

// newApp loads the configuration and applies the global flags over it.
func newApp() (*app, error) {
	required := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			required = true
		}
	})
	config, err := LoadConfig(*configFile, required)
	if err != nil {
		return nil, err
	}
	applyFlags(config)

	a := &app{config: config, log: newStderrLogger(config.Logging), now: time.Now}
	a.log.Debug().Str("config", *configFile).Str("base", config.BaseCurrency).Msg("configuration loaded")
	return a, nil
}

// applyFlags overrides config with the global flags that are set.
func applyFlags(config *Config) {
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&config.BaseCurrency, *baseCurrency)
	override(&config.Holdings, *holdingsFile)
	override(&config.Prices, *pricesFile)
	override(&config.RatesFile, *ratesFile)
	override(&config.Lots, *lotsFile)
	override(&config.Transactions, *transactionsFile)
	config.BaseCurrency = strings.ToUpper(strings.TrimSpace(config.BaseCurrency))
}

// decodeFile opens filename and decodes it. Missing optional files decode to the zero value.
func decodeFile[T any](filename string, optional bool, decode func(string, io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(filename)
	if optional && errors.Is(err, fs.ErrNotExist) {
		return zero, nil
	}
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return decode(filename, f)
}

// portfolio is everything a report computation pass reads: holdings and one
// consistent snapshot of prices and rates.
type portfolio struct {
	Holdings []folio.Holding
	Prices   folio.Prices
	Rates    folio.Rates
	Base     string
}

// loadPortfolio loads the holdings, their quotes and the FX rates.
func (a *app) loadPortfolio(ctx context.Context) (*portfolio, error) {
	holdings, err := decodeFile(a.config.Holdings, false, folio.DecodeHoldings)
	if err != nil {
		return nil, fmt.Errorf("cannot load holdings: %w", err)
	}
	rates, err := a.loadRates()
	if err != nil {
		return nil, err
	}
	prices, err := a.loadPrices(ctx, holdings)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Int("holdings", len(holdings)).Int("prices", len(prices)).Int("rates", len(rates)).Msg("portfolio loaded")

	for _, h := range holdings {
		if h.Symbol != "" && h.Quantity != nil && prices.For(h) == nil && h.Type.IsListed() {
			a.log.Warn().Str("holding", h.ID).Str("symbol", h.Symbol).Msg("price unavailable")
		}
		if h.Currency != a.config.BaseCurrency && !rates.HasLive(h.Currency, a.config.BaseCurrency) {
			a.log.Debug().Str("holding", h.ID).Str("currency", h.Currency).Msg("using fallback FX rate")
		}
	}
	return &portfolio{Holdings: holdings, Prices: prices, Rates: rates, Base: a.config.BaseCurrency}, nil
}

// loadRates merges the rates file with the inline rates of the configuration.
func (a *app) loadRates() (folio.Rates, error) {
	rates := make(folio.Rates)
	if a.config.RatesFile != "" {
		fromFile, err := decodeFile(a.config.RatesFile, false, folio.DecodeRates)
		if err != nil {
			return nil, fmt.Errorf("cannot load rates: %w", err)
		}
		for c, r := range fromFile {
			rates[c] = r
		}
	}
	for c, r := range folio.NormalizeRates(a.config.Rates) {
		rates[c] = r
	}
	return rates, nil
}

// loadPrices builds the quotes snapshot of the holdings. The prices file
// seeds the cache, quotes older than the max age are refreshed from the
// configured provider document or URL, if any.
func (a *app) loadPrices(ctx context.Context, holdings []folio.Holding) (folio.Prices, error) {
	cache := quotes.NewCache(a.config.Quotes.GetMaxAge(), a.now)

	if info, err := os.Stat(a.config.Prices); err == nil {
		prices, err := decodeFile(a.config.Prices, false, folio.DecodePrices)
		if err != nil {
			return nil, fmt.Errorf("cannot load prices: %w", err)
		}
		cache.Load(prices, info.ModTime())
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot load prices: %w", err)
	}

	var src quotes.Source
	if a.config.Quotes.Document != "" {
		doc, err := decodeFile(a.config.Quotes.Document, false, func(_ string, r io.Reader) (any, error) {
			return quotes.ReadDocument(r)
		})
		if err != nil {
			return nil, fmt.Errorf("cannot load quotes document: %w", err)
		}
		src = quotes.JSONPathSource{Doc: doc, Paths: a.config.Quotes.Paths, Currency: a.config.Quotes.Currency}
	} else if a.config.Quotes.URL != "" {
		src = quotes.HTTPSource{URL: a.config.Quotes.URL, Paths: a.config.Quotes.Paths, Currency: a.config.Quotes.Currency}
	}

	s := quotes.NewSnapshotter(cache, src)
	s.Log = a.log
	if a.config.Quotes.Parallel > 0 {
		s.Parallel = a.config.Quotes.Parallel
	}
	prices, err := s.Snapshot(ctx, quotes.Symbols(holdings))
	if err != nil {
		// the snapshot is still usable, missing quotes are reported as unavailable.
		a.log.Warn().Err(err).Msg("some quotes could not be refreshed")
	}
	return prices, nil
}

// loadLedger loads the lots and the recorded transactions.
func (a *app) loadLedger() ([]folio.Lot, []folio.Transaction, error) {
	lots, err := decodeFile(a.config.Lots, true, folio.DecodeLots)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load lots: %w", err)
	}
	txs, err := decodeFile(a.config.Transactions, true, folio.DecodeTransactions)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load transactions: %w", err)
	}
	a.log.Debug().Int("lots", len(lots)).Int("transactions", len(txs)).Msg("ledger loaded")
	return lots, txs, nil
}

// appendTransaction appends a single transaction into the transactions file.
func (a *app) appendTransaction(tx folio.Transaction) error {
	filename := a.config.Transactions
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open transactions file %q: %w", filename, err)
	}
	defer f.Close()

	if err := folio.EncodeTransaction(f, tx); err != nil {
		return fmt.Errorf("cannot write to transactions file %q: %w", filename, err)
	}
	a.log.Info().Str("id", tx.ID).Str("type", string(tx.Type)).Str("file", filename).Msg("transaction recorded")
	return nil
}
