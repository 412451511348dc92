package calculator

import "github.com/havanahub/investors/internal/models"

// InvestorStats holds the derived figures for one investor.
type InvestorStats struct {
	InvestorID string
	Name       string
	Amount     float64
	Returns    float64
	Share      float64 // Percentage of total raised
	ROI        float64 // Returns as a percentage of amount
	PaidOut    float64 // Sum of payouts referencing this investor
	Balance    float64 // Amount minus PaidOut; may be negative
}

// Summary aggregates a whole document.
type Summary struct {
	TotalRaised   float64
	TotalPayouts  float64
	InvestorCount int
	PayoutCount   int
	Investors     []InvestorStats // Document order
}

// PaidOut sums the payouts referencing investorID.
func PaidOut(investorID string, doc *models.Document) float64 {
	var total float64
	for _, p := range doc.Payouts {
		if p.InvestorID == investorID {
			total += p.Amount.Float64()
		}
	}
	return total
}

// PayoutBalance is the amount invested minus the payouts received.
// No clamping: over-paid investors have a negative balance.
func PayoutBalance(inv models.Investor, doc *models.Document) float64 {
	return inv.Amount.Float64() - PaidOut(inv.ID, doc)
}

// OrphanBalance is the balance shown against a payout whose investor no
// longer exists: nothing invested, minus everything paid under that ID.
func OrphanBalance(investorID string, doc *models.Document) float64 {
	return -PaidOut(investorID, doc)
}

// Summarize computes every derived figure in one pass over the payouts.
func Summarize(doc *models.Document) Summary {
	// Pre-aggregate payouts per investor so stats are linear in document size
	paid := make(map[string]float64, len(doc.Investors))
	for _, p := range doc.Payouts {
		paid[p.InvestorID] += p.Amount.Float64()
	}

	total := TotalRaised(doc)
	s := Summary{
		TotalRaised:   total,
		TotalPayouts:  TotalPayouts(doc),
		InvestorCount: len(doc.Investors),
		PayoutCount:   len(doc.Payouts),
		Investors:     make([]InvestorStats, 0, len(doc.Investors)),
	}

	for _, inv := range doc.Investors {
		amount := inv.Amount.Float64()
		s.Investors = append(s.Investors, InvestorStats{
			InvestorID: inv.ID,
			Name:       inv.Name,
			Amount:     amount,
			Returns:    inv.Returns.Float64(),
			Share:      share(amount, total),
			ROI:        ROI(inv),
			PaidOut:    paid[inv.ID],
			Balance:    amount - paid[inv.ID],
		})
	}

	return s
}

// Stats returns the entry for investorID.
func (s Summary) Stats(investorID string) (InvestorStats, bool) {
	for _, st := range s.Investors {
		if st.InvestorID == investorID {
			return st, true
		}
	}
	return InvestorStats{}, false
}
