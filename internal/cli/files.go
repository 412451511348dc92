package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/havanahub/investors/internal/impexp"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the ledger as JSON or CSV" }
func (*exportCmd) Usage() string {
	return `havana export [-format json|csv] [-o <file>]

  Writes the whole document as JSON, or the investor table as CSV.
  Output goes to stdout unless -o is given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "Export format, json or csv.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := impexp.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		if c.output == "" {
			return s.ledger.Export(stdout, format)
		}

		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", c.output, err)
		}
		if err := s.ledger.Export(f, format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %q: %w", c.output, err)
		}
		fmt.Fprintf(stderr, "Exported %s to %s\n", format, c.output)
		return nil
	})
}

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "load investors from a JSON or CSV file" }
func (*importCmd) Usage() string {
	return `havana import [-format json|csv] <file>

  A JSON file replaces the whole ledger. A CSV file appends its rows as new
  investors; rows with invalid numbers are skipped and reported. The format
  is taken from the file extension unless -format is given.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Import format, json or csv.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)

	format := impexp.DetectFormat(filename)
	if c.format != "" {
		var err error
		if format, err = impexp.ParseFormat(c.format); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	return withSession(ctx, func(s *session) error {
		res, err := s.ledger.Import(ctx, format, data)
		if err != nil {
			return err
		}

		switch res.Format {
		case impexp.FormatJSON:
			fmt.Fprintf(stdout, "Replaced ledger from %s: %d investors, %d payouts\n", filepath.Base(filename), res.Imported, res.Payouts)
		default:
			fmt.Fprintf(stdout, "Imported %d investors from %s\n", res.Imported, filepath.Base(filename))
		}
		for _, skipped := range res.Skipped {
			fmt.Fprintf(stderr, "Skipped %v\n", skipped)
		}
		return nil
	})
}
