package models

// Payout represents a disbursement of funds to one investor.
type Payout struct {
	// ID is the opaque unique identifier.
	ID string `json:"id"`

	// InvestorID references an Investor. Deleting the investor leaves the
	// payout in place; it is then displayed as "Unknown".
	InvestorID string `json:"investorId"`

	// Amount is the payout amount.
	Amount Amount `json:"amount"`

	// Date is the payout date (YYYY-MM-DD).
	Date string `json:"date"`
}
