// Package calculator computes the derived figures of a ledger document:
// totals, ownership shares, ROI and payout balances.
// Every function is pure; nothing here mutates the document.
package calculator

import (
	"math"

	"github.com/havanahub/investors/internal/models"
)

// TotalRaised is the sum of every investor amount.
func TotalRaised(doc *models.Document) float64 {
	var total float64
	for _, inv := range doc.Investors {
		total += inv.Amount.Float64()
	}
	return total
}

// TotalPayouts is the sum of every payout amount.
func TotalPayouts(doc *models.Document) float64 {
	var total float64
	for _, p := range doc.Payouts {
		total += p.Amount.Float64()
	}
	return total
}

// OwnershipShare returns the investor's amount as a percentage of the total
// raised. It is 0 when nothing has been raised.
func OwnershipShare(inv models.Investor, doc *models.Document) float64 {
	return share(inv.Amount.Float64(), TotalRaised(doc))
}

func share(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return finite(amount / total * 100)
}

// ROI returns returns as a percentage of the amount invested.
// It is 0 when the amount is 0, whatever the returns.
func ROI(inv models.Investor) float64 {
	amount := inv.Amount.Float64()
	if amount == 0 {
		return 0
	}
	return finite(inv.Returns.Float64() / amount * 100)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
