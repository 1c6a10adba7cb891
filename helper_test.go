package folio

// listed returns a listed holding of qty units of symbol, in USD.
func listed(id string, typ AssetType, symbol string, qty float64) Holding {
	return Holding{ID: id, Name: symbol, Type: typ, Symbol: symbol, Quantity: Num(qty), Currency: "USD"}
}

// manual returns a manually valued holding, in USD.
func manual(id string, typ AssetType, value float64) Holding {
	return Holding{ID: id, Name: id, Type: typ, ManualValue: Num(value), Currency: "USD"}
}

// quote returns a quote in USD with a previous close.
func quote(symbol string, price, previousClose float64) PriceResult {
	return PriceResult{Symbol: symbol, Price: price, Currency: "USD", PreviousClose: Num(previousClose)}
}

// quote24h returns a quote in USD with only a 24h change.
func quote24h(symbol string, price, changePercent float64) PriceResult {
	return PriceResult{Symbol: symbol, Price: price, Currency: "USD", ChangePercent: Num(changePercent)}
}

// flat returns a quote in USD without change information.
func flat(symbol string, price float64) PriceResult {
	return PriceResult{Symbol: symbol, Price: price, Currency: "USD"}
}

// pricesOf indexes quotes by symbol.
func pricesOf(quotes ...PriceResult) Prices {
	p := make(Prices)
	for _, q := range quotes {
		p[q.Symbol] = q
	}
	return p
}

// ptr returns a pointer to q.
func ptr(q PriceResult) *PriceResult { return &q }
