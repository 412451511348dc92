package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"

	"github.com/havanahub/investors/internal/impexp"
	"github.com/havanahub/investors/internal/render"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	plain bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the investor dashboard" }
func (*summaryCmd) Usage() string {
	return `havana summary [-plain]

  Displays the totals, the investor table and the payout table.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of styled output.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) error {
		printMarkdown(render.SummaryMarkdown(s.dashboard()), c.plain)
		return nil
	})
}

// queryCmd evaluates a JSONPath expression against the document.
type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `havana query <expression>

  Prints the result of a JSONPath expression evaluated on the stored
  document, for example:

    havana query '$.investors[?(@.amount > 1000)].name'
`
}

func (*queryCmd) SetFlags(*flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) error {
		var buf bytes.Buffer
		if err := s.ledger.Export(&buf, impexp.FormatJSON); err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			return fmt.Errorf("failed to decode document: %w", err)
		}

		result, err := jsonpath.Get(f.Arg(0), doc)
		if err != nil {
			return fmt.Errorf("error evaluating %q: %w", f.Arg(0), err)
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	})
}
