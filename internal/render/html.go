package render

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/osteele/liquid"
)

//go:embed templates/dashboard.liquid
var dashboardSource string

// Page renders the dashboard HTML page.
type Page struct {
	tpl *liquid.Template
}

// NewPage parses the embedded dashboard template.
func NewPage() (*Page, error) {
	engine := liquid.NewEngine()
	tpl, err := engine.ParseString(dashboardSource)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &Page{tpl: tpl}, nil
}

// Render renders the dashboard. authRequired makes the page ask for the
// operator passphrase before sending mutations.
func (p *Page) Render(d Dashboard, authRequired bool) ([]byte, error) {
	bindings, err := dashboardBindings(d)
	if err != nil {
		return nil, err
	}
	bindings["auth_required"] = authRequired

	out, err := p.tpl.Render(bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return out, nil
}

func dashboardBindings(d Dashboard) (map[string]any, error) {
	// encoding/json escapes <, > and & so the payload is safe inside <script>
	state, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dashboard: %w", err)
	}

	investors := make([]map[string]any, len(d.Investors))
	for i, r := range d.Investors {
		investors[i] = map[string]any{
			"id":      r.ID,
			"name":    r.Name,
			"amount":  r.Amount,
			"value":   r.Value,
			"share":   r.Share,
			"returns": r.Returns,
			"roi":     r.ROI,
		}
	}

	payouts := make([]map[string]any, len(d.Payouts))
	for i, r := range d.Payouts {
		payouts[i] = map[string]any{
			"investor": r.Investor,
			"amount":   r.Amount,
			"date":     r.Date,
			"balance":  r.Balance,
			"orphaned": r.Orphaned,
		}
	}

	options := make([]map[string]any, len(d.Options))
	for i, o := range d.Options {
		options[i] = map[string]any{"value": o.Value, "label": o.Label}
	}

	return map[string]any{
		"currency":       d.Currency,
		"total_raised":   d.TotalRaised,
		"total_payouts":  d.TotalPayouts,
		"investor_count": d.InvestorCount,
		"investors":      investors,
		"payouts":        payouts,
		"options":        options,
		"state_json":     string(state),
	}, nil
}
