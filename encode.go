package folio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// This file decodes the records the valuation functions consume. Holdings and
// lots are JSONL files, one record per line, prices and rates are single JSON
// objects. filename arguments are only used in error messages.

// jholding is a holding as read from a file.
type jholding struct {
	ID                string   `json:"id"`
	PortfolioID       string   `json:"portfolioId"`
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	Symbol            string   `json:"symbol"`
	Quantity          *float64 `json:"quantity"`
	ManualValue       *float64 `json:"manualValue"`
	Currency          string   `json:"currency"`
	CostBasis         *float64 `json:"costBasis"`
	CostBasisCurrency string   `json:"costBasisCurrency"`
}

// DecodeHoldings reads a JSONL file of holdings.
func DecodeHoldings(filename string, r io.Reader) ([]Holding, error) {
	var holdings []Holding
	seen := make(map[string]bool)
	err := scanLines(filename, r, func(line int, data []byte) error {
		var j jholding
		if err := json.Unmarshal(data, &j); err != nil {
			return err
		}
		h := Holding{
			ID:                j.ID,
			PortfolioID:       j.PortfolioID,
			Name:              j.Name,
			Type:              AssetType(j.Type),
			Symbol:            j.Symbol,
			Quantity:          j.Quantity,
			ManualValue:       j.ManualValue,
			Currency:          normalizeCurrency(j.Currency),
			CostBasis:         j.CostBasis,
			CostBasisCurrency: normalizeCurrency(j.CostBasisCurrency),
		}
		if err := h.Validate(); err != nil {
			return err
		}
		if seen[h.ID] {
			return fmt.Errorf("holding %q is already defined", h.ID)
		}
		seen[h.ID] = true
		holdings = append(holdings, h)
		return nil
	})
	return holdings, err
}

// jlot is a lot as read from a file.
type jlot struct {
	ID                string    `json:"id"`
	HoldingID         string    `json:"holdingId"`
	AssetID           string    `json:"assetId"`
	Timestamp         time.Time `json:"timestamp"`
	QtyIn             *Quantity `json:"qtyIn"`
	CostBasisUSDTotal *Quantity `json:"costBasisUsdTotal"`
	Source            string    `json:"source"`
}

// DecodeLots reads a JSONL file of lots, in file order.
func DecodeLots(filename string, r io.Reader) ([]Lot, error) {
	var lots []Lot
	err := scanLines(filename, r, func(line int, data []byte) error {
		var j jlot
		if err := json.Unmarshal(data, &j); err != nil {
			return err
		}
		var errs []error
		if j.ID == "" {
			errs = append(errs, errors.New("missing lot id"))
		}
		if j.HoldingID == "" {
			errs = append(errs, errors.New("missing holding id"))
		}
		if j.QtyIn == nil || !j.QtyIn.IsPositive() {
			errs = append(errs, errors.New("qtyIn must be positive"))
		}
		if j.CostBasisUSDTotal != nil && j.CostBasisUSDTotal.IsNegative() {
			errs = append(errs, errors.New("costBasisUsdTotal must not be negative"))
		}
		switch src := LotSource(j.Source); src {
		case TransferLot, SwapLot, ManualLot:
		default:
			errs = append(errs, fmt.Errorf("unknown lot source %q", j.Source))
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		l := Lot{
			ID:        j.ID,
			HoldingID: j.HoldingID,
			AssetID:   j.AssetID,
			Timestamp: j.Timestamp,
			QtyIn:     *j.QtyIn,
			Source:    LotSource(j.Source),
		}
		if j.CostBasisUSDTotal != nil {
			c := USD(j.CostBasisUSDTotal.value)
			l.CostBasisUSDTotal = &c
		}
		lots = append(lots, l)
		return nil
	})
	return lots, err
}

// jprice is a quote as read from a file.
type jprice struct {
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	PreviousClose *float64 `json:"previousClose"`
	ChangePercent *float64 `json:"changePercent"`
}

// DecodePrices reads a JSON object mapping symbols to quotes.
func DecodePrices(filename string, r io.Reader) (Prices, error) {
	var raw map[string]jprice
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	prices := make(Prices, len(raw))
	for symbol, j := range raw {
		if j.Price <= 0 {
			return nil, fmt.Errorf("format error in %q: price of %q must be positive, got %v", filename, symbol, j.Price)
		}
		prices[symbol] = PriceResult{
			Symbol:        symbol,
			Price:         j.Price,
			Currency:      normalizeCurrency(j.Currency),
			PreviousClose: j.PreviousClose,
			ChangePercent: j.ChangePercent,
		}
	}
	return prices, nil
}

// DecodeRates reads a JSON object mapping currency codes to rates.
func DecodeRates(filename string, r io.Reader) (Rates, error) {
	var raw map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return NormalizeRates(raw), nil
}

// NormalizeRates returns a copy of raw with upper case currency codes.
func NormalizeRates(raw map[string]float64) Rates {
	rates := make(Rates, len(raw))
	for code, rate := range raw {
		rates[normalizeCurrency(code)] = rate
	}
	return rates
}

// jtransaction is a transaction as read from a file, the reverse of Transaction.MarshalJSON.
type jtransaction struct {
	ID               string     `json:"id"`
	HoldingID        string     `json:"holdingId"`
	Type             string     `json:"type"`
	Date             time.Time  `json:"date"`
	Quantity         *Quantity  `json:"quantity"`
	PricePerUnit     *Quantity  `json:"pricePerUnit"`
	TotalAmount      Quantity   `json:"totalAmount"`
	Currency         string     `json:"currency"`
	RealizedGainLoss *Quantity  `json:"realizedGainLoss"`
	ConsumedLots     []jconsume `json:"consumedLots"`
}

type jconsume struct {
	LotID        string    `json:"lotId"`
	QtyConsumed  Quantity  `json:"qtyConsumed"`
	CostConsumed *Quantity `json:"costConsumed"`
}

// DecodeTransactions reads a JSONL file of transactions, as written by EncodeTransaction.
func DecodeTransactions(filename string, r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	err := scanLines(filename, r, func(line int, data []byte) error {
		var j jtransaction
		if err := json.Unmarshal(data, &j); err != nil {
			return err
		}
		var errs []error
		if j.HoldingID == "" {
			errs = append(errs, errors.New("missing holding id"))
		}
		switch TransactionType(j.Type) {
		case SellTransaction, DividendTransaction:
		default:
			errs = append(errs, fmt.Errorf("unknown transaction type %q", j.Type))
		}
		cur := normalizeCurrency(j.Currency)
		if err := ValidateCurrency(cur); err != nil {
			errs = append(errs, err)
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}

		tx := Transaction{
			ID:          j.ID,
			HoldingID:   j.HoldingID,
			Type:        TransactionType(j.Type),
			Date:        j.Date,
			Quantity:    j.Quantity,
			TotalAmount: M(j.TotalAmount.value, cur),
		}
		if j.PricePerUnit != nil {
			p := M(j.PricePerUnit.value, cur)
			tx.PricePerUnit = &p
		}
		if j.RealizedGainLoss != nil {
			g := M(j.RealizedGainLoss.value, cur)
			tx.RealizedGainLoss = &g
		}
		for _, c := range j.ConsumedLots {
			consumed := ConsumedLot{LotID: c.LotID, QtyConsumed: c.QtyConsumed, CostConsumed: USD(0)}
			if c.CostConsumed != nil {
				consumed.CostConsumed = USD(c.CostConsumed.value)
				consumed.CostKnown = true
			}
			tx.ConsumedLots = append(tx.ConsumedLots, consumed)
		}
		txs = append(txs, tx)
		return nil
	})
	return txs, err
}

// EncodeTransaction appends tx as a single JSON line to w.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := tx.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode transaction: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// scanLines calls decode for every non blank line of r, and wraps errors with
// the file name and line number.
func scanLines(filename string, r io.Reader, decode func(line int, data []byte) error) error {
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		data := scanner.Bytes()
		if len(strings.TrimSpace(string(data))) == 0 {
			continue
		}
		if err := decode(i, data); err != nil {
			return fmt.Errorf("format error in %q on line %d: %w", filename, i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return nil
}
