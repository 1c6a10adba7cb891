package folio

// ValuationKind tells which input values a holding.
type ValuationKind int

const (
	// Unvalued holdings have neither a usable quote nor a manual value. They are worth 0.
	Unvalued ValuationKind = iota
	// Listed holdings are valued as quantity × quote.
	Listed
	// Manual holdings are valued from their user entered value.
	Manual
)

func (k ValuationKind) String() string {
	switch k {
	case Listed:
		return "listed"
	case Manual:
		return "manual"
	default:
		return "unvalued"
	}
}

// ReferenceSource tells where the reference (prior) value of a holding comes from.
type ReferenceSource int

const (
	// NoReference is used for unvalued holdings.
	NoReference ReferenceSource = iota
	// FlatReference is used for manual holdings: they have no day change.
	FlatReference
	// PreviousCloseReference uses the quote's previous close.
	PreviousCloseReference
	// Change24hReference back-solves the prior price from a 24h change percent.
	Change24hReference
	// NoChangeReference is used for quotes without any change information, the
	// reference is the current value.
	NoChangeReference
)

func (s ReferenceSource) String() string {
	switch s {
	case FlatReference:
		return "flat"
	case PreviousCloseReference:
		return "previous_close"
	case Change24hReference:
		return "24h"
	case NoChangeReference:
		return "no_change"
	default:
		return "none"
	}
}

// Valuation is the valuation path of one holding, derived once per
// computation pass. Every value, reference value, display and attribution
// function reads it instead of re-deriving the branch conditions.
type Valuation struct {
	Holding Holding
	Kind    ValuationKind

	// Quantity and Price are set for Listed valuations.
	Quantity float64
	Price    *PriceResult

	// ManualValue is set for Manual valuations.
	ManualValue float64

	// Rate converts the holding currency into the base currency.
	Rate float64
}

// Valuate derives the valuation path of h.
//
// The listed path (quantity, symbol and quote all present) takes precedence;
// the manual value is only used when it does not apply.
func Valuate(h Holding, price *PriceResult, baseCurrency string, rates Rates) Valuation {
	v := Valuation{
		Holding: h,
		Rate:    RateToBase(h.Currency, baseCurrency, rates),
	}
	switch {
	case h.Quantity != nil && h.Symbol != "" && price != nil:
		v.Kind = Listed
		v.Quantity = *h.Quantity
		v.Price = price
	case h.ManualValue != nil:
		v.Kind = Manual
		v.ManualValue = *h.ManualValue
	}
	return v
}

// Current returns the current value in base currency.
func (v Valuation) Current() float64 {
	switch v.Kind {
	case Listed:
		return v.Quantity * v.Price.Price * v.Rate
	case Manual:
		return v.ManualValue * v.Rate
	default:
		return 0
	}
}

// ReferenceSource returns where Reference gets its value from.
func (v Valuation) ReferenceSource() ReferenceSource {
	switch v.Kind {
	case Manual:
		return FlatReference
	case Listed:
		if v.Price.PreviousClose != nil {
			return PreviousCloseReference
		}
		if cp := v.Price.ChangePercent; cp != nil && *cp != 0 && 1+*cp/100 > 0 {
			return Change24hReference
		}
		return NoChangeReference
	default:
		return NoReference
	}
}

// Reference returns the value at the prior comparison point in base currency:
// previous close for traditional markets, 24h ago for always-on ones.
func (v Valuation) Reference() float64 {
	switch v.ReferenceSource() {
	case FlatReference, NoChangeReference:
		return v.Current()
	case PreviousCloseReference:
		return v.Quantity * *v.Price.PreviousClose * v.Rate
	case Change24hReference:
		prior := v.Price.Price / (1 + *v.Price.ChangePercent/100)
		return v.Quantity * prior * v.Rate
	default:
		return 0
	}
}

// IsPriceUnavailable reports whether the holding is a listed one with a
// positive quantity that could not be priced nor falls back on a manual value.
func (v Valuation) IsPriceUnavailable() bool {
	h := v.Holding
	return v.Kind == Unvalued && h.Type.IsListed() && h.Quantity != nil && *h.Quantity > 0
}

// PriceUnavailable is displayed instead of a value for listed holdings that
// cannot be priced, a $0.00 would be misleading.
const PriceUnavailable = "Price unavailable"

// Display formats the current value in base currency, or PriceUnavailable.
func (v Valuation) Display(baseCurrency string) string {
	if v.IsPriceUnavailable() {
		return PriceUnavailable
	}
	return M(v.Current(), normalizeCurrency(baseCurrency)).String()
}

// ValueInBase returns the current value of h in baseCurrency, 0 when h has no
// valuation input.
func ValueInBase(h Holding, price *PriceResult, baseCurrency string, rates Rates) float64 {
	return Valuate(h, price, baseCurrency, rates).Current()
}

// ReferenceValueInBase returns the value of h at the prior comparison point in baseCurrency.
func ReferenceValueInBase(h Holding, price *PriceResult, baseCurrency string, rates Rates) float64 {
	return Valuate(h, price, baseCurrency, rates).Reference()
}

// FormatHoldingValueDisplay renders the current value of h for display.
func FormatHoldingValueDisplay(h Holding, price *PriceResult, baseCurrency string, rates Rates) string {
	return Valuate(h, price, baseCurrency, rates).Display(baseCurrency)
}

// valuations derives the valuation of every holding, in order.
func valuations(holdings []Holding, prices Prices, baseCurrency string, rates Rates) []Valuation {
	vals := make([]Valuation, len(holdings))
	for i, h := range holdings {
		vals[i] = Valuate(h, prices.For(h), baseCurrency, rates)
	}
	return vals
}
