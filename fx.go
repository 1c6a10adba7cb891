package folio

import "strings"

// Rates maps a currency code to its rate against a common anchor currency
// (USD in practice): Rates["EUR"] is the number of euros per anchor unit.
// A nil Rates is valid and means "no live rates available".
type Rates map[string]float64

// fallbackUSDPerUnit is the last-resort table used when live rates cannot
// convert a pair. Values are USD per unit of the currency.
var fallbackUSDPerUnit = map[string]float64{
	"USD": 1,
	"EUR": 1.05,
	"GBP": 1.27,
}

// RateToBase returns the factor that converts an amount in fromCurrency into
// baseCurrency.
//
// Live rates are used when they know both currencies and the from rate is
// positive. Otherwise the small fallback table applies, and currencies
// unknown to it are treated as already being in base units (rate 1).
// RateToBase never fails.
func RateToBase(fromCurrency, baseCurrency string, rates Rates) float64 {
	from, base := normalizeCurrency(fromCurrency), normalizeCurrency(baseCurrency)
	if from == base {
		return 1
	}
	if rates != nil {
		rf, okFrom := rates[from]
		rb, okBase := rates[base]
		if okFrom && okBase && rf > 0 {
			return rb / rf
		}
	}
	return fallbackRate(from) / fallbackRate(base)
}

func fallbackRate(currency string) float64 {
	if r, ok := fallbackUSDPerUnit[currency]; ok {
		return r
	}
	return 1
}

// normalizeCurrency upper cases codes, so that "usd" and "USD" are the same currency.
func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Convert returns amount, expressed in currency, converted to base.
func (r Rates) Convert(amount float64, currency, base string) float64 {
	return amount * RateToBase(currency, base, r)
}

// HasLive reports whether a live rate is available to convert currency into base.
// It is false when RateToBase would use the fallback table.
func (r Rates) HasLive(currency, base string) bool {
	from, to := normalizeCurrency(currency), normalizeCurrency(base)
	if from == to {
		return true
	}
	rf, okFrom := r[from]
	_, okBase := r[to]
	return okFrom && okBase && rf > 0
}
