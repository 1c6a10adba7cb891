// Package quotes provides the price lookup side of folio: sources of quotes,
// a cache with an explicit clock, and the snapshot builder that turns them
// into the single folio.Prices map a computation pass reads.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/etnz/folio"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source fetches the current quote of a symbol.
type Source interface {
	Quote(ctx context.Context, symbol string) (folio.PriceResult, error)
}

// ErrNotFound is returned by sources that do not know a symbol.
var ErrNotFound = errors.New("quote not found")

// Snapshotter builds consistent price snapshots from a cache and a source.
type Snapshotter struct {
	Cache  *Cache
	Source Source // optional
	// Parallel limits the number of concurrent source requests, 4 when not positive.
	Parallel int
	Log      zerolog.Logger
}

// NewSnapshotter returns a Snapshotter reading from cache first, then from src.
func NewSnapshotter(cache *Cache, src Source) *Snapshotter {
	return &Snapshotter{Cache: cache, Source: src, Parallel: 4, Log: zerolog.Nop()}
}

// Snapshot returns the quotes of symbols.
//
// Fresh cached quotes are used as is; others are fetched from the source and
// cached. When fetching fails, a stale cached quote is used instead. Symbols
// with no quote at all are left out of the result, folio values them as
// unpriced. The returned error lists the failed fetches; the snapshot is
// usable even when it is not nil.
func (s *Snapshotter) Snapshot(ctx context.Context, symbols []string) (folio.Prices, error) {
	prices := make(folio.Prices)
	var (
		mu   sync.Mutex
		errs []error
	)

	var missing []string
	for _, symbol := range unique(symbols) {
		if q, ok := s.Cache.Fresh(symbol); ok {
			prices[symbol] = q
			continue
		}
		missing = append(missing, symbol)
	}

	if s.Source != nil && len(missing) > 0 {
		limit := s.Parallel
		if limit <= 0 {
			limit = 4
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)
		for _, symbol := range missing {
			symbol := symbol
			g.Go(func() error {
				q, err := s.Source.Quote(gctx, symbol)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, fmt.Errorf("cannot fetch %q: %w", symbol, err))
					return nil
				}
				q.Symbol = symbol
				s.Cache.Put(q)
				prices[symbol] = q
				return nil
			})
		}
		// goroutines never return an error, failures are collected in errs.
		_ = g.Wait()
	}

	for _, symbol := range missing {
		if _, ok := prices[symbol]; ok {
			continue
		}
		if q, at, ok := s.Cache.Any(symbol); ok {
			s.Log.Warn().Str("symbol", symbol).Time("fetched_at", at).Msg("using stale quote")
			prices[symbol] = q
			continue
		}
		s.Log.Warn().Str("symbol", symbol).Msg("no quote available")
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return prices, errors.Join(errs...)
}

// Symbols returns the distinct symbols of the holdings that can be priced, in order.
func Symbols(holdings []folio.Holding) []string {
	var symbols []string
	for _, h := range holdings {
		if h.Symbol != "" && h.Quantity != nil {
			symbols = append(symbols, h.Symbol)
		}
	}
	return unique(symbols)
}

func unique(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	var out []string
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// StaticSource serves quotes from a fixed map.
type StaticSource folio.Prices

// Quote implements Source.
func (s StaticSource) Quote(_ context.Context, symbol string) (folio.PriceResult, error) {
	q, ok := s[symbol]
	if !ok {
		return folio.PriceResult{}, ErrNotFound
	}
	return q, nil
}

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time
