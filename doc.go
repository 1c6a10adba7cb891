// Package folio values a personal portfolio and explains its performance.
//
// It is a pure computation layer: it receives already decoded holdings, a
// snapshot of quotes and an optional table of exchange rates, and computes
//   - values in a base currency, with a deterministic FX fallback,
//   - totals, weights and the allocation by asset class,
//   - the day change of the portfolio and the contribution of each holding,
//   - the return since inception against the cost basis,
//   - concentration statistics (HHI) and summary counts,
//   - realized gains of sells, by matching acquisition lots first in first out.
//
// Nothing in this package fetches prices, reads storage or keeps state
// between calls: the same inputs always produce the same outputs. Missing
// data produces zeros, empty results or a false "ok" value, never an error.
//
// Decoders for the JSON files used by the `fol` command line tool are
// provided as well.
package folio
