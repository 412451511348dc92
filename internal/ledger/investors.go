package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/havanahub/investors/internal/models"
)

// InvestorInput is a contribution as entered by the operator.
type InvestorInput struct {
	Name   string
	Amount string
	Date   string
	Method string
}

// AddInvestor records a contribution. When an investor with the same name
// (case-insensitive) exists, the amount is added to theirs and date and method
// are replaced only when given; merged reports this case. Otherwise a new
// investor is appended with zero returns.
func (l *Ledger) AddInvestor(ctx context.Context, in InvestorInput) (models.Investor, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Investor{}, false, l.reject(OpAddInvestor, validationError("name is required"))
	}
	amount, err := parsePositive(in.Amount)
	if err != nil {
		return models.Investor{}, false, l.reject(OpAddInvestor, err)
	}

	var (
		result models.Investor
		merged bool
	)
	err = l.commit(ctx, OpAddInvestor, func(doc *models.Document) error {
		if existing, ok := doc.InvestorByName(name); ok {
			existing.Amount = models.Amount(existing.Amount.Float64() + amount)
			if in.Date != "" {
				existing.Date = in.Date
			}
			if in.Method != "" {
				existing.Method = in.Method
			}
			result, merged = *existing, true
			return nil
		}

		result = models.Investor{
			ID:     l.newID(),
			Name:   name,
			Amount: models.Amount(amount),
			Date:   in.Date,
			Method: in.Method,
		}
		doc.Investors = append(doc.Investors, result)
		return nil
	})
	if err != nil {
		return models.Investor{}, false, err
	}

	slog.Info("Investor recorded",
		"investor_id", result.ID,
		"merged", merged,
		"amount", amount,
	)
	return result, merged, nil
}

// EditInvestor replaces an investor's name and amount. The name must not be
// blank; the amount must be a non-negative number.
func (l *Ledger) EditInvestor(ctx context.Context, id, name, amount string) (models.Investor, error) {
	if id == "" {
		return models.Investor{}, l.reject(OpEditInvestor, validationError("investor id is required"))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Investor{}, l.reject(OpEditInvestor, validationError("name is required"))
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return models.Investor{}, l.reject(OpEditInvestor, err)
	}

	var result models.Investor
	err = l.commit(ctx, OpEditInvestor, func(doc *models.Document) error {
		inv, ok := doc.Investor(id)
		if !ok {
			return ErrNotFound
		}
		inv.Name = name
		inv.Amount = models.Amount(value)
		result = *inv
		return nil
	})
	if err != nil {
		return models.Investor{}, err
	}

	slog.Info("Investor edited", "investor_id", id)
	return result, nil
}

// DeleteInvestor removes an investor once confirmed. Payouts referencing the
// investor are kept and become orphaned.
func (l *Ledger) DeleteInvestor(ctx context.Context, id string, confirmed bool) (models.Investor, error) {
	if id == "" {
		return models.Investor{}, l.reject(OpDeleteInvestor, validationError("investor id is required"))
	}
	if !confirmed {
		return models.Investor{}, l.reject(OpDeleteInvestor, ErrConfirmationRequired)
	}

	var removed models.Investor
	err := l.commit(ctx, OpDeleteInvestor, func(doc *models.Document) error {
		i := doc.InvestorIndex(id)
		if i < 0 {
			return ErrNotFound
		}
		removed = doc.Investors[i]
		doc.Investors = append(doc.Investors[:i], doc.Investors[i+1:]...)
		return nil
	})
	if err != nil {
		return models.Investor{}, err
	}

	slog.Info("Investor deleted", "investor_id", id)
	return removed, nil
}
