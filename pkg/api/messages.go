package api

// Investor mirrors the stored investor record.
type Investor struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	Method  string  `json:"method"`
	Returns float64 `json:"returns"`
}

// Payout mirrors the stored payout record.
type Payout struct {
	ID         string  `json:"id"`
	InvestorID string  `json:"investorId"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
}

// InvestorStats holds the derived figures of one investor.
type InvestorStats struct {
	InvestorID string  `json:"investorId"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Returns    float64 `json:"returns"`
	Share      float64 `json:"share"`
	ROI        float64 `json:"roi"`
	PaidOut    float64 `json:"paidOut"`
	Balance    float64 `json:"balance"`
}

// Summary aggregates the whole ledger.
type Summary struct {
	TotalRaised   float64          `json:"totalRaised"`
	TotalPayouts  float64          `json:"totalPayouts"`
	InvestorCount int              `json:"investorCount"`
	PayoutCount   int              `json:"payoutCount"`
	Investors     []*InvestorStats `json:"investors"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Currency  string      `json:"currency"`
	Summary   *Summary    `json:"summary"`
	Investors []*Investor `json:"investors"`
	Payouts   []*Payout   `json:"payouts"`
}

type AddInvestorRequest struct {
	Name   string `json:"name"`
	Amount Number `json:"amount"`
	Date   string `json:"date,omitempty"`
	Method string `json:"method,omitempty"`
}

type AddInvestorResponse struct {
	Investor *Investor `json:"investor"`
	Merged   bool      `json:"merged"`
}

type EditInvestorRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount Number `json:"amount"`
}

type EditInvestorResponse struct {
	Investor *Investor `json:"investor"`
}

type DeleteInvestorRequest struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

type DeleteInvestorResponse struct {
	Investor *Investor `json:"investor"`
}

type AddPayoutRequest struct {
	InvestorID string `json:"investorId"`
	Amount     Number `json:"amount"`
	Date       string `json:"date,omitempty"`
}

type AddPayoutResponse struct {
	Payout *Payout `json:"payout"`
}

// ImportDocumentRequest uploads a JSON or CSV file. Format ("json" or "csv")
// wins over the filename; without either the content is read as CSV.
type ImportDocumentRequest struct {
	Format   string `json:"format,omitempty"`
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
}

// RowError reports a rejected CSV line.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportDocumentResponse struct {
	Format   string      `json:"format"`
	Imported int         `json:"imported"`
	Payouts  int         `json:"payouts"`
	Skipped  []*RowError `json:"skipped"`
}

type ExportDocumentRequest struct {
	Format string `json:"format"`
}

type ExportDocumentResponse struct {
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type LoginRequest struct {
	Passphrase string `json:"passphrase"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // Unix seconds
}
