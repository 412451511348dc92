package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/havanahub/investors/internal/models"
)

// PayoutInput is a disbursement as entered by the operator.
type PayoutInput struct {
	InvestorID string
	Amount     string
	Date       string // Defaults to today
}

// AddPayout appends a payout to an existing investor.
func (l *Ledger) AddPayout(ctx context.Context, in PayoutInput) (models.Payout, error) {
	investorID := strings.TrimSpace(in.InvestorID)
	if investorID == "" {
		return models.Payout{}, l.reject(OpAddPayout, validationError("investor is required"))
	}
	amount, err := parsePositive(in.Amount)
	if err != nil {
		return models.Payout{}, l.reject(OpAddPayout, err)
	}

	var result models.Payout
	err = l.commit(ctx, OpAddPayout, func(doc *models.Document) error {
		if _, ok := doc.Investor(investorID); !ok {
			return ErrNotFound
		}

		date := strings.TrimSpace(in.Date)
		if date == "" {
			date = l.today()
		}
		result = models.Payout{
			ID:         l.newID(),
			InvestorID: investorID,
			Amount:     models.Amount(amount),
			Date:       date,
		}
		doc.Payouts = append(doc.Payouts, result)
		return nil
	})
	if err != nil {
		return models.Payout{}, err
	}

	slog.Info("Payout recorded",
		"payout_id", result.ID,
		"investor_id", investorID,
		"amount", amount,
	)
	return result, nil
}
