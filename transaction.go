package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of realized event recorded against a holding.
type TransactionType string

const (
	SellTransaction     TransactionType = "sell"
	DividendTransaction TransactionType = "dividend"
)

// Transaction is a realized event on a holding. ID is left empty, it is
// assigned by the storage that records the transaction.
type Transaction struct {
	ID        string
	HoldingID string
	Type      TransactionType
	Date      time.Time

	// Quantity and PricePerUnit are only set on sells.
	Quantity     *Quantity
	PricePerUnit *Money

	TotalAmount Money
	// RealizedGainLoss is only set on sells whose consumed lots carry a cost.
	RealizedGainLoss *Money

	// ConsumedLots is the lot consumption ledger the storage applies with a sell.
	ConsumedLots []ConsumedLot
}

// Currency returns the currency of the transaction amounts.
func (tx Transaction) Currency() string { return tx.TotalAmount.Currency() }

// ValidateSell checks that selling qty is possible out of open quantity.
// ComputeFifoSell does not enforce it, this is the strict check for callers who need it.
func ValidateSell(open, qty Quantity) error {
	if !qty.IsPositive() {
		return fmt.Errorf("sell quantity must be positive, got %s", qty)
	}
	if qty.GreaterThan(open) {
		return fmt.Errorf("cannot sell %s units, only %s are held", qty, open)
	}
	return nil
}

// NewSell builds the sell transaction of qty units at pricePerUnit, matching
// lots with FIFO. lots must be sorted oldest first.
//
// Lot costs are in USD: a price in another currency is converted with rates
// to match lots, and the consumed cost is converted back so that amounts and
// gain are all in the price currency.
//
// The sell is recorded for the quantity the lots could fill, it fails when
// they hold nothing.
func NewSell(holdingID string, lots []Lot, qty Quantity, pricePerUnit Money, rates Rates, on time.Time) (Transaction, error) {
	var errs []error
	if holdingID == "" {
		errs = append(errs, errors.New("missing holding id"))
	}
	if !qty.IsPositive() {
		errs = append(errs, fmt.Errorf("sell quantity must be positive, got %s", qty))
	}
	if pricePerUnit.IsNegative() {
		errs = append(errs, fmt.Errorf("sell price must not be negative, got %s", pricePerUnit))
	}
	if err := errors.Join(errs...); err != nil {
		return Transaction{}, err
	}

	cur := normalizeCurrency(pricePerUnit.Currency())
	if cur == "" {
		cur = USDCode
	}
	price := M(pricePerUnit.value, cur)
	toUSD := decimal.NewFromFloat(RateToBase(cur, USDCode, rates))
	sell := ComputeFifoSell(lots, qty, USD(price.value.Mul(toUSD)))
	if sell.Filled.IsZero() {
		return Transaction{}, fmt.Errorf("no open lot of %q to sell", holdingID)
	}

	proceeds := price.Mul(sell.Filled)
	tx := Transaction{
		HoldingID:    holdingID,
		Type:         SellTransaction,
		Date:         on,
		Quantity:     &sell.Filled,
		PricePerUnit: &price,
		TotalAmount:  proceeds,
		ConsumedLots: sell.ConsumedLots,
	}
	if sell.CostKnown() {
		fromUSD := decimal.NewFromFloat(RateToBase(USDCode, cur, rates))
		gain := M(proceeds.value.Sub(sell.TotalCostConsumed.value.Mul(fromUSD)), cur)
		tx.RealizedGainLoss = &gain
	}
	return tx, nil
}

// NewDividend builds a dividend transaction.
func NewDividend(holdingID string, amount Money, on time.Time) (Transaction, error) {
	if holdingID == "" {
		return Transaction{}, errors.New("missing holding id")
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("dividend amount must be positive, got %s", amount)
	}
	return Transaction{
		HoldingID:   holdingID,
		Type:        DividendTransaction,
		Date:        on,
		TotalAmount: amount,
	}, nil
}

// MarshalJSON writes the transaction fields in a stable order.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", tx.ID)
	w.Append("holdingId", tx.HoldingID)
	w.Append("type", tx.Type)
	w.Append("date", tx.Date.UTC().Format(time.RFC3339))
	w.Optional("quantity", tx.Quantity)
	if tx.PricePerUnit != nil {
		w.Append("pricePerUnit", tx.PricePerUnit.value)
	}
	w.Append("totalAmount", tx.TotalAmount.value)
	w.Append("currency", tx.Currency())
	if tx.Type == SellTransaction {
		// null is meaningful: the gain is unknown.
		if tx.RealizedGainLoss != nil {
			w.Append("realizedGainLoss", tx.RealizedGainLoss.value)
		} else {
			w.Append("realizedGainLoss", nil)
		}
	}
	if len(tx.ConsumedLots) > 0 {
		w.Append("consumedLots", tx.ConsumedLots)
	}
	return w.MarshalJSON()
}

// MarshalJSON writes the consumption of one lot.
func (c ConsumedLot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("lotId", c.LotID)
	w.Append("qtyConsumed", c.QtyConsumed)
	if c.CostKnown {
		w.Append("costConsumed", c.CostConsumed.value)
	} else {
		w.Append("costConsumed", nil)
	}
	return w.MarshalJSON()
}

// Consumed returns the lot consumption recorded by the sells of holdingID, in order.
func Consumed(txs []Transaction, holdingID string) []ConsumedLot {
	var consumed []ConsumedLot
	for _, tx := range txs {
		if tx.Type != SellTransaction || tx.HoldingID != holdingID {
			continue
		}
		consumed = append(consumed, tx.ConsumedLots...)
	}
	return consumed
}
