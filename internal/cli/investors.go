package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/havanahub/investors/internal/impexp"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/models"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	name   string
	amount string
	date   string
	method string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an investor contribution" }
func (*addCmd) Usage() string {
	return `havana add [-name <name>] [-amount <amount>] [-date <YYYY-MM-DD>] [-method <method>]

  Records a contribution. A contribution under an existing name (ignoring
  case) is added to that investor. Missing name or amount are prompted for.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Investor name.")
	f.StringVar(&c.amount, "amount", "", "Amount contributed.")
	f.StringVar(&c.date, "date", "", "Contribution date.")
	f.StringVar(&c.method, "method", "", "Payment method, such as cash or bank.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		in := ledger.InvestorInput{Name: c.name, Amount: c.amount, Date: c.date, Method: c.method}

		p := newPrompter()
		var err error
		if in.Name == "" {
			if in.Name, err = p.ask("Name", ""); err != nil {
				return err
			}
		}
		if in.Amount == "" {
			if in.Amount, err = p.ask("Amount", ""); err != nil {
				return err
			}
		}

		inv, merged, err := s.ledger.AddInvestor(ctx, in)
		if err != nil {
			return err
		}
		if merged {
			fmt.Fprintf(stdout, "Added %s to %s, now %s\n", s.formatter.Money(parsed(in.Amount)), inv.Name, s.formatter.Money(inv.Amount.Float64()))
		} else {
			fmt.Fprintf(stdout, "Added investor %s (%s) with %s\n", inv.Name, inv.ID, s.formatter.Money(inv.Amount.Float64()))
		}
		return nil
	})
}

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	name   string
	amount string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change an investor's name or amount" }
func (*editCmd) Usage() string {
	return `havana edit [-name <name>] [-amount <amount>] <investor>

  Changes the name and amount of an investor given by id or name. Values not
  given as flags are prompted for, with the current value as default.
  Ending the input cancels the edit.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		inv, err := findInvestor(s.ledger.Document(), f.Arg(0))
		if err != nil {
			return err
		}

		name, amount := c.name, c.amount
		p := newPrompter()
		if name == "" {
			if name, err = p.ask("Name", inv.Name); err != nil {
				return err
			}
		}
		if amount == "" {
			if amount, err = p.ask("Amount", impexp.FormatNumber(inv.Amount.Float64())); err != nil {
				return err
			}
		}

		updated, err := s.ledger.EditInvestor(ctx, inv.ID, name, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Updated %s: %s\n", updated.Name, s.formatter.Money(updated.Amount.Float64()))
		return nil
	})
}

// deleteCmd holds the flags for the 'delete' subcommand.
type deleteCmd struct {
	yes bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove an investor" }
func (*deleteCmd) Usage() string {
	return `havana delete [-yes] <investor>

  Removes an investor given by id or name after confirmation. Their payouts
  are kept.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		inv, err := findInvestor(s.ledger.Document(), f.Arg(0))
		if err != nil {
			return err
		}

		confirmed := c.yes
		if !confirmed {
			if confirmed, err = newPrompter().confirm(fmt.Sprintf("Delete investor %s?", inv.Name)); err != nil {
				return err
			}
			if !confirmed {
				return errCancelled
			}
		}

		removed, err := s.ledger.DeleteInvestor(ctx, inv.ID, confirmed)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted investor %s\n", removed.Name)
		return nil
	})
}

// payoutCmd holds the flags for the 'payout' subcommand.
type payoutCmd struct {
	investor string
	amount   string
	date     string
}

func (*payoutCmd) Name() string     { return "payout" }
func (*payoutCmd) Synopsis() string { return "record a payout to an investor" }
func (*payoutCmd) Usage() string {
	return `havana payout -investor <investor> -amount <amount> [-date <YYYY-MM-DD>]

  Records a disbursement to an investor given by id or name. The date
  defaults to today.
`
}

func (c *payoutCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investor, "investor", "", "Investor id or name.")
	f.StringVar(&c.amount, "amount", "", "Amount paid out.")
	f.StringVar(&c.date, "date", "", "Payout date. Defaults to today.")
}

func (c *payoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.investor == "" || c.amount == "" {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		inv, err := findInvestor(s.ledger.Document(), c.investor)
		if err != nil {
			return err
		}

		p, err := s.ledger.AddPayout(ctx, ledger.PayoutInput{InvestorID: inv.ID, Amount: c.amount, Date: c.date})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Paid %s to %s on %s\n", s.formatter.Money(p.Amount.Float64()), inv.Name, p.Date)
		return nil
	})
}

// findInvestor resolves an id first, then a case-insensitive name.
func findInvestor(doc *models.Document, ref string) (models.Investor, error) {
	if inv, ok := doc.Investor(ref); ok {
		return *inv, nil
	}
	if inv, ok := doc.InvestorByName(ref); ok {
		return *inv, nil
	}
	return models.Investor{}, fmt.Errorf("investor %q: %w", ref, ledger.ErrNotFound)
}

func parsed(amount string) float64 {
	v, _ := ledger.ParseAmount(amount)
	return v
}
