package render

import (
	"github.com/havanahub/investors/internal/calculator"
	"github.com/havanahub/investors/internal/models"
)

// UnknownInvestor is shown for payouts whose investor no longer exists.
const UnknownInvestor = "Unknown"

var palette = []string{
	"#0f9bd7", "#ffd166", "#06d6a0", "#ff6b6b", "#845ec2",
	"#4d8076", "#ff9f1c", "#00b4d8", "#8b5cf6", "#ffbc42",
}

// Colors returns n chart colours, cycling through the palette.
func Colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

// InvestorRow is one line of the investor table.
type InvestorRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	Value   string `json:"value"` // Amount as a plain number
	Share   string `json:"share"`
	Returns string `json:"returns"`
	ROI     string `json:"roi"`
	Date    string `json:"date"`
	Method  string `json:"method"`
}

// PayoutRow is one line of the payout table.
type PayoutRow struct {
	ID       string `json:"id"`
	Investor string `json:"investor"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Balance  string `json:"balance"`
	Orphaned bool   `json:"orphaned"`
}

// Option is an entry of the payout investor selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Chart holds the series shared by the ownership pie and the contribution bar.
type Chart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors"`
}

// Dashboard is the complete view model of the dashboard page.
type Dashboard struct {
	Currency      string        `json:"currency"`
	TotalRaised   string        `json:"totalRaised"`
	TotalPayouts  string        `json:"totalPayouts"`
	InvestorCount int           `json:"investorCount"`
	PayoutCount   int           `json:"payoutCount"`
	Investors     []InvestorRow `json:"investors"`
	Payouts       []PayoutRow   `json:"payouts"`
	Options       []Option      `json:"options"`
	Chart         Chart         `json:"chart"`
}

// BuildDashboard derives the dashboard view from a document and its summary.
// s must be the summary of doc.
func BuildDashboard(doc *models.Document, s calculator.Summary, f *Formatter) Dashboard {
	d := Dashboard{
		Currency:      f.Currency(),
		TotalRaised:   f.Money(s.TotalRaised),
		TotalPayouts:  f.Money(s.TotalPayouts),
		InvestorCount: s.InvestorCount,
		PayoutCount:   s.PayoutCount,
		Investors:     make([]InvestorRow, 0, len(s.Investors)),
		Payouts:       make([]PayoutRow, 0, len(doc.Payouts)),
		Options:       make([]Option, 0, len(doc.Investors)),
		Chart: Chart{
			Labels: make([]string, 0, len(s.Investors)),
			Data:   make([]float64, 0, len(s.Investors)),
			Colors: Colors(len(s.Investors)),
		},
	}

	for i, st := range s.Investors {
		inv := doc.Investors[i]
		d.Investors = append(d.Investors, InvestorRow{
			ID:      st.InvestorID,
			Name:    st.Name,
			Amount:  f.Money(st.Amount),
			Value:   f.Number(st.Amount),
			Share:   f.Percent(st.Share),
			Returns: f.Money(st.Returns),
			ROI:     f.Percent(st.ROI),
			Date:    inv.Date,
			Method:  inv.Method,
		})
		d.Options = append(d.Options, Option{Value: st.InvestorID, Label: st.Name})
		d.Chart.Labels = append(d.Chart.Labels, st.Name)
		d.Chart.Data = append(d.Chart.Data, st.Amount)
	}

	for _, p := range doc.Payouts {
		row := PayoutRow{
			ID:     p.ID,
			Amount: f.Money(p.Amount.Float64()),
			Date:   p.Date,
		}
		if st, ok := s.Stats(p.InvestorID); ok {
			row.Investor = st.Name
			row.Balance = f.Money(st.Balance)
		} else {
			row.Investor = UnknownInvestor
			row.Orphaned = true
			row.Balance = f.Money(calculator.OrphanBalance(p.InvestorID, doc))
		}
		d.Payouts = append(d.Payouts, row)
	}

	return d
}
