// Package cli implements the havana command line tool.
//
// Every command opens the configured store, performs one operation on the
// ledger and exits. The store is the same one the server uses, so the CLI
// can run next to it or instead of it.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/havanahub/investors/internal/config"
	"github.com/havanahub/investors/internal/ledger"
	"github.com/havanahub/investors/internal/render"
	"github.com/havanahub/investors/internal/storage"
	"github.com/havanahub/investors/internal/storage/backend"
)

// as a CLI application, it has a very short lived lifecycle, so package
// level state is fine.

var configPath = flag.String("config", "", "Path to the YAML configuration file. Defaults to $HAVANA_CONFIG.")

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// errCancelled is returned by prompts when input ends.
var errCancelled = errors.New("cancelled")

// Register adds every command to c.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "investors")
	c.Register(&editCmd{}, "investors")
	c.Register(&deleteCmd{}, "investors")
	c.Register(&payoutCmd{}, "payouts")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&exportCmd{}, "files")
	c.Register(&importCmd{}, "files")

	c.Register(&hashPassphraseCmd{}, "admin")
}

// session is an opened ledger plus what is needed to render it.
type session struct {
	store     storage.Store
	ledger    *ledger.Ledger
	formatter *render.Formatter
}

// openSession loads the configuration and the ledger it points at.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := backend.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &session{
		store:     store,
		ledger:    l,
		formatter: render.NewFormatter(cfg.Display.Currency),
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

func (s *session) dashboard() render.Dashboard {
	doc, summary := s.ledger.Snapshot()
	return render.BuildDashboard(doc, summary, s.formatter)
}

// withSession opens a session, runs fn and maps errors to an exit status.
func withSession(ctx context.Context, fn func(s *session) error) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			fmt.Fprintf(stderr, "Error: the stored ledger is corrupt, fix or remove it first: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := fn(s); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(stderr, "Cancelled, nothing changed.")
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, ledger.ErrValidation) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// prompter reads answers line by line from stdin.
type prompter struct {
	in *bufio.Reader
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(stdin)}
}

// ask prints label and returns the trimmed answer, or def when the answer is
// empty. End of input returns errCancelled.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(stdout, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(stdout, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", errCancelled
		}
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question+" [y/N]", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// printMarkdown renders md for the terminal. Plain output is used when
// rendering fails or when plain is set.
func printMarkdown(md string, plain bool) {
	if plain {
		fmt.Fprint(stdout, md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
