package models

import "strings"

// Document is the persisted aggregate root: every investor and payout, in
// insertion order.
type Document struct {
	Investors []Investor `json:"investors"`
	Payouts   []Payout   `json:"payouts"`
}

// NewDocument returns an empty document with non-nil collections, so that it
// serializes as {"investors":[],"payouts":[]}.
func NewDocument() *Document {
	return &Document{
		Investors: []Investor{},
		Payouts:   []Payout{},
	}
}

// Normalize replaces nil collections with empty ones.
func (d *Document) Normalize() {
	if d.Investors == nil {
		d.Investors = []Investor{}
	}
	if d.Payouts == nil {
		d.Payouts = []Payout{}
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{
		Investors: make([]Investor, len(d.Investors)),
		Payouts:   make([]Payout, len(d.Payouts)),
	}
	copy(c.Investors, d.Investors)
	copy(c.Payouts, d.Payouts)
	return c
}

// InvestorIndex returns the index of the investor with the given ID, or -1.
func (d *Document) InvestorIndex(id string) int {
	for i := range d.Investors {
		if d.Investors[i].ID == id {
			return i
		}
	}
	return -1
}

// Investor returns the investor with the given ID.
func (d *Document) Investor(id string) (*Investor, bool) {
	i := d.InvestorIndex(id)
	if i < 0 {
		return nil, false
	}
	return &d.Investors[i], true
}

// InvestorByName finds an investor by case-insensitive exact name match.
// The first match in document order wins.
func (d *Document) InvestorByName(name string) (*Investor, bool) {
	for i := range d.Investors {
		if strings.EqualFold(d.Investors[i].Name, name) {
			return &d.Investors[i], true
		}
	}
	return nil, false
}
