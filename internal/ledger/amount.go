package ledger

import (
	"strings"

	"github.com/havanahub/investors/internal/impexp"
)

// ParseAmount parses a user-entered amount. It accepts any decimal notation
// and rejects empty, non-numeric and negative input with ErrValidation.
// Zero is accepted; callers that need a positive amount check for it.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, validationError("amount is required")
	}

	v, err := impexp.ParseNumber(s)
	if err != nil {
		return 0, validationError("amount %v", err)
	}
	if v < 0 {
		return 0, validationError("amount must not be negative")
	}
	return v, nil
}

func parsePositive(s string) (float64, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, validationError("amount must be greater than zero")
	}
	return v, nil
}
