package folio

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// USDCode is the currency of lot costs and FIFO results.
const USDCode = "USD"

// USD returns v US dollars.
func USD[T number](v T) Money { return M(v, USDCode) }

// LotSource tells how a lot was acquired.
type LotSource string

const (
	TransferLot LotSource = "transfer"
	SwapLot     LotSource = "swap"
	ManualLot   LotSource = "manual"
)

// Lot is one acquisition of an asset. Lots are never mutated: selling
// produces ConsumedLot records instead.
type Lot struct {
	ID        string
	HoldingID string
	AssetID   string
	Timestamp time.Time // acquisition time, the FIFO ordering key
	QtyIn     Quantity
	// CostBasisUSDTotal is the total cost of the lot in USD, nil when unknown.
	CostBasisUSDTotal *Money
	Source            LotSource
}

// LotsFor returns the lots of a holding sorted oldest first, ready for
// ComputeFifoSell. Lots with the same timestamp keep their order.
func LotsFor(lots []Lot, holdingID string) []Lot {
	var own []Lot
	for _, l := range lots {
		if l.HoldingID == holdingID {
			own = append(own, l)
		}
	}
	slices.SortStableFunc(own, func(a, b Lot) int { return a.Timestamp.Compare(b.Timestamp) })
	return own
}

// hasCost reports whether the lot cost is known.
func (l Lot) hasCost() bool { return l.CostBasisUSDTotal != nil }

// costOf returns the cost of qty units of the lot, zero when the cost is unknown.
func (l Lot) costOf(qty Quantity) decimal.Decimal {
	if !l.hasCost() || l.QtyIn.IsZero() {
		return decimal.Zero
	}
	if qty.Equal(l.QtyIn) {
		return l.CostBasisUSDTotal.value
	}
	// multiply first, to keep the division last.
	return l.CostBasisUSDTotal.value.Mul(qty.value).Div(l.QtyIn.value)
}

// ConsumedLot records the part of a lot consumed by a sell.
type ConsumedLot struct {
	LotID        string
	QtyConsumed  Quantity
	CostConsumed Money
	// CostKnown is false when the lot had no cost, CostConsumed is then zero.
	CostKnown bool
}

// FifoSell is the outcome of matching a sell against lots.
type FifoSell struct {
	// Filled is the quantity actually matched. It is less than the requested
	// quantity when the lots do not hold enough.
	Filled            Quantity
	TotalProceeds     Money
	TotalCostConsumed Money
	RealizedGainLoss  Money
	ConsumedLots      []ConsumedLot
}

// CostKnown reports whether at least one consumed lot carried a cost.
func (s FifoSell) CostKnown() bool {
	for _, c := range s.ConsumedLots {
		if c.CostKnown {
			return true
		}
	}
	return false
}

// ComputeFifoSell matches a sell of sellQty units at sellPricePerUnit against
// lots, oldest first. lots must already be sorted by ascending Timestamp.
//
// Lots without cost contribute no cost, which understates the cost basis.
// Selling more than the lots hold fills only what is available, without error;
// callers wanting strict accounting must use ValidateSell first.
// Amounts are in USD like lot costs, the currency of sellPricePerUnit is not checked.
func ComputeFifoSell(lots []Lot, sellQty Quantity, sellPricePerUnit Money) FifoSell {
	var (
		filled   Quantity
		proceeds decimal.Decimal
		cost     decimal.Decimal
		consumed []ConsumedLot
	)
	remaining := sellQty
	for _, l := range lots {
		if !remaining.IsPositive() {
			break
		}
		if !l.QtyIn.IsPositive() {
			continue
		}
		qty := remaining.Min(l.QtyIn)
		lotCost := l.costOf(qty)

		cost = cost.Add(lotCost)
		proceeds = proceeds.Add(qty.value.Mul(sellPricePerUnit.value))
		filled = filled.Add(qty)
		remaining = remaining.Sub(qty)
		consumed = append(consumed, ConsumedLot{
			LotID:        l.ID,
			QtyConsumed:  qty,
			CostConsumed: USD(lotCost),
			CostKnown:    l.hasCost(),
		})
	}
	return FifoSell{
		Filled:            filled,
		TotalProceeds:     USD(proceeds),
		TotalCostConsumed: USD(cost),
		RealizedGainLoss:  USD(proceeds.Sub(cost)),
		ConsumedLots:      consumed,
	}
}

// LotBalance is what remains of a lot after consumption.
type LotBalance struct {
	Lot
	Open Quantity
	// OpenCost is the cost of the open quantity, nil when the lot cost is unknown.
	OpenCost *Money
}

// RemainingLots applies a consumption ledger to lots and returns the lots
// still open, in the same order. lots are left untouched.
func RemainingLots(lots []Lot, consumed []ConsumedLot) []LotBalance {
	used := make(map[string]Quantity)
	for _, c := range consumed {
		used[c.LotID] = used[c.LotID].Add(c.QtyConsumed)
	}

	var open []LotBalance
	for _, l := range lots {
		q := l.QtyIn.Sub(used[l.ID])
		if !q.IsPositive() {
			continue
		}
		b := LotBalance{Lot: l, Open: q}
		if l.hasCost() {
			c := USD(l.costOf(q))
			b.OpenCost = &c
		}
		open = append(open, b)
	}
	return open
}

// OpenQuantity returns the total open quantity of balances.
func OpenQuantity(balances []LotBalance) Quantity {
	var total Quantity
	for _, b := range balances {
		total = total.Add(b.Open)
	}
	return total
}

// Remaining returns the lot reduced to its open quantity and cost, ready to
// be matched by a later sell.
func (b LotBalance) Remaining() Lot {
	l := b.Lot
	l.QtyIn = b.Open
	l.CostBasisUSDTotal = b.OpenCost
	return l
}

// OpenLots returns the lots of holdingID still open after the sells of txs,
// oldest first, as input for ComputeFifoSell.
func OpenLots(lots []Lot, txs []Transaction, holdingID string) []Lot {
	var open []Lot
	for _, b := range RemainingLots(LotsFor(lots, holdingID), Consumed(txs, holdingID)) {
		open = append(open, b.Remaining())
	}
	return open
}
