package folio

import (
	"errors"
	"fmt"
)

// AssetType is the asset class of a holding.
type AssetType string

// Listed asset classes are priced from market quotes.
const (
	Stock     AssetType = "stock"
	ETF       AssetType = "etf"
	Crypto    AssetType = "crypto"
	Metal     AssetType = "metal"
	Commodity AssetType = "commodity"
)

// Non listed asset classes are valued manually.
const (
	FixedIncome AssetType = "fixed_income"
	RealEstate  AssetType = "real_estate"
	Cash        AssetType = "cash"
	Other       AssetType = "other"
)

// AssetTypes lists every asset class, listed ones first.
var AssetTypes = []AssetType{Stock, ETF, Crypto, Metal, Commodity, FixedIncome, RealEstate, Cash, Other}

// IsListed reports whether holdings of this class are priced from market quotes.
func (t AssetType) IsListed() bool {
	switch t {
	case Stock, ETF, Crypto, Metal, Commodity:
		return true
	}
	return false
}

// ParseAssetType parses one of the AssetTypes names.
func ParseAssetType(s string) (AssetType, error) {
	for _, t := range AssetTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown asset type: %q", s)
}

// Holding is a position in a portfolio, as read from storage.
//
// Optional numbers are pointers: nil means absent, which is different from
// zero for valuation purposes.
type Holding struct {
	ID          string
	PortfolioID string
	Name        string
	Type        AssetType

	// Listed attributes.
	Symbol   string
	Quantity *float64

	// Non listed attributes.
	ManualValue *float64

	Currency string
	// CostBasis is per unit for listed holdings, and the total for non listed ones.
	CostBasis *float64
	// CostBasisCurrency defaults to Currency when empty.
	CostBasisCurrency string
}

// Num returns a pointer to v, to fill optional Holding fields.
func Num(v float64) *float64 { return &v }

// Label returns the best human name for the holding: its name, its symbol or its id.
func (h Holding) Label() string {
	switch {
	case h.Name != "":
		return h.Name
	case h.Symbol != "":
		return h.Symbol
	default:
		return h.ID
	}
}

// costCurrency returns the currency the cost basis is expressed in.
func (h Holding) costCurrency() string {
	if h.CostBasisCurrency != "" {
		return h.CostBasisCurrency
	}
	return h.Currency
}

// Validate returns every inconsistency found in h, joined.
func (h Holding) Validate() error {
	var errs []error
	if h.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if _, err := ParseAssetType(string(h.Type)); err != nil {
		errs = append(errs, err)
	}
	if h.Currency == "" {
		errs = append(errs, errors.New("missing currency"))
	}
	if h.Quantity != nil && *h.Quantity < 0 {
		errs = append(errs, fmt.Errorf("negative quantity %v", *h.Quantity))
	}
	if h.ManualValue != nil && *h.ManualValue < 0 {
		errs = append(errs, fmt.Errorf("negative manual value %v", *h.ManualValue))
	}
	if h.CostBasis != nil && *h.CostBasis < 0 {
		errs = append(errs, fmt.Errorf("negative cost basis %v", *h.CostBasis))
	}
	return errors.Join(errs...)
}
