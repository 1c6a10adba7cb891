package folio

// PriceResult is a market quote for one symbol.
type PriceResult struct {
	Symbol   string
	Price    float64
	Currency string
	// PreviousClose is the last close of traditional markets.
	PreviousClose *float64
	// ChangePercent is the daily change, 2.5 meaning +2.5%. Always-on
	// markets report the last 24h change here instead of a previous close.
	ChangePercent *float64
}

// Prices is a consistent snapshot of quotes indexed by symbol.
type Prices map[string]PriceResult

// Lookup returns the quote for symbol, or nil if there is none.
func (p Prices) Lookup(symbol string) *PriceResult {
	if symbol == "" {
		return nil
	}
	q, ok := p[symbol]
	if !ok {
		return nil
	}
	return &q
}

// For returns the quote used to value h, or nil.
func (p Prices) For(h Holding) *PriceResult {
	return p.Lookup(h.Symbol)
}
