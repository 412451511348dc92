// Package models defines the core domain models for the Havana Hub investor ledger.
//
// # Models
//
//   - Investor: a party that has contributed capital, tracked by cumulative amount and returns
//   - Payout: a disbursement of funds to one investor
//   - Document: the single persisted aggregate holding every investor and payout
//
// # Design Principles
//
//  1. **One aggregate**: the Document is loaded, mutated and saved as a whole
//  2. **Ordered collections**: slice order is insertion order and display order
//  3. **References by ID**: a payout points at its investor through InvestorID;
//     the reference may dangle after the investor is deleted
//  4. **Tolerant decoding**: numeric fields accept the loose values older browser
//     exports contain (null, numeric strings) and fall back to 0
package models
