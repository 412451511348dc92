package models

// Investor represents a party that has contributed capital.
type Investor struct {
	// ID is the opaque unique identifier, assigned at creation and never changed.
	// Investors created by this service carry a UUID; imported documents may
	// carry the legacy "id_xxxxxxx" form.
	ID string `json:"id"`

	// Name is the display name. It is the case-insensitive merge key when a
	// contribution is recorded, but uniqueness is not enforced.
	Name string `json:"name"`

	// Amount is the cumulative invested total.
	// Reinvestment adds to it; an edit overwrites it.
	Amount Amount `json:"amount"`

	// Date is the last contribution date (free-form, usually YYYY-MM-DD).
	Date string `json:"date"`

	// Method is the payment method label (e.g., "cash", "mobile money").
	Method string `json:"method"`

	// Returns is the cumulative return credited to the investor.
	// No operation writes it after creation; it is carried through imports.
	Returns Amount `json:"returns"`
}
