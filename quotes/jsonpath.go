package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
)

// Paths are the JSONPath expressions locating the fields of a quote in a
// provider document. "{symbol}" is replaced by the requested symbol.
// Only Price is mandatory.
type Paths struct {
	Price         string `toml:"price"`
	Currency      string `toml:"currency"`
	PreviousClose string `toml:"previous_close"`
	ChangePercent string `toml:"change_percent"`
}

// JSONPathSource serves quotes out of a decoded provider JSON document, so
// that any provider response format can be mapped to quotes by configuration.
type JSONPathSource struct {
	Doc   any
	Paths Paths
	// Currency is used when Paths.Currency is empty or finds nothing.
	Currency string
}

// ReadDocument decodes a JSON document for a JSONPathSource.
func ReadDocument(r io.Reader) (any, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode quotes document: %w", err)
	}
	return doc, nil
}

// Quote implements Source.
func (s JSONPathSource) Quote(_ context.Context, symbol string) (folio.PriceResult, error) {
	if s.Paths.Price == "" {
		return folio.PriceResult{}, fmt.Errorf("no price path configured")
	}
	price, ok, err := s.number(s.Paths.Price, symbol)
	if err != nil {
		return folio.PriceResult{}, err
	}
	if !ok {
		return folio.PriceResult{}, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	if price <= 0 {
		return folio.PriceResult{}, fmt.Errorf("invalid price %v for %s", price, symbol)
	}
	q := folio.PriceResult{Symbol: symbol, Price: price, Currency: s.Currency}

	if s.Paths.Currency != "" {
		if v, ok := s.get(s.Paths.Currency, symbol); ok {
			if cur, isString := v.(string); isString && cur != "" {
				q.Currency = strings.ToUpper(cur)
			}
		}
	}
	if s.Paths.PreviousClose != "" {
		if v, ok, err := s.number(s.Paths.PreviousClose, symbol); err == nil && ok {
			q.PreviousClose = folio.Num(v)
		}
	}
	if s.Paths.ChangePercent != "" {
		if v, ok, err := s.number(s.Paths.ChangePercent, symbol); err == nil && ok {
			q.ChangePercent = folio.Num(v)
		}
	}
	return q, nil
}

// get evaluates path for symbol. Missing values are not errors, ok is false.
func (s JSONPathSource) get(path, symbol string) (any, bool) {
	expr := strings.ReplaceAll(path, "{symbol}", symbol)
	v, err := jsonpath.Get(expr, s.Doc)
	if err != nil {
		return nil, false
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer or a single answer: keep the first one if any.
	if list, isList := v.([]any); isList {
		if len(list) == 0 {
			return nil, false
		}
		v = list[0]
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

// number evaluates path for symbol as a number. Numbers written as strings are accepted.
func (s JSONPathSource) number(path, symbol string) (float64, bool, error) {
	v, ok := s.get(path, symbol)
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case string:
		var f float64
		if _, err := fmt.Sscan(strings.ReplaceAll(n, ",", "."), &f); err != nil {
			return 0, false, fmt.Errorf("value %q at %s is not a number", n, path)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("value at %s is not a number: %v", path, v)
	}
}
