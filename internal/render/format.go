// Package render turns a ledger document and its summary into views: the
// dashboard view model, the HTML dashboard page, and markdown/HTML reports.
// Every function here is a pure function of its inputs.
package render

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the label shown before every monetary figure.
const DefaultCurrency = "GHS"

// Formatter renders display values. Stored values keep full precision;
// rounding to two decimals happens only here.
type Formatter struct {
	currency string
	money    *money.Formatter
}

// NewFormatter returns a formatter using the given currency label.
// An empty label selects DefaultCurrency.
func NewFormatter(currency string) *Formatter {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		currency: currency,
		money:    money.NewFormatter(2, ".", ",", currency, "$ 1"),
	}
}

// Currency returns the currency label.
func (f *Formatter) Currency() string {
	return f.currency
}

// Money formats v as "GHS 1,234.50".
func (f *Formatter) Money(v float64) string {
	cents := round2(v).Shift(2).IntPart()
	return f.money.Format(cents)
}

// Percent formats v as "12.50%".
func (f *Formatter) Percent(v float64) string {
	return round2(v).StringFixed(2) + "%"
}

// Number formats v in its shortest plain form without a currency label,
// as an editable input value.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return decimal.NewFromFloat(v).String()
}

func round2(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}
