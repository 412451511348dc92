package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/havanahub/investors/internal/auth"
)

// hashPassphraseCmd prints the bcrypt hash of an operator passphrase.
type hashPassphraseCmd struct{}

func (*hashPassphraseCmd) Name() string     { return "hash-passphrase" }
func (*hashPassphraseCmd) Synopsis() string { return "hash an operator passphrase for the configuration" }
func (*hashPassphraseCmd) Usage() string {
	return `havana hash-passphrase [<passphrase>]

  Prints the value to set as auth.passphrase_hash (or HAVANA_PASSPHRASE_HASH).
  The passphrase is read from stdin when not given.
`
}

func (*hashPassphraseCmd) SetFlags(*flag.FlagSet) {}

func (c *hashPassphraseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	passphrase := f.Arg(0)
	if passphrase == "" {
		var err error
		if passphrase, err = newPrompter().ask("Passphrase", ""); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	hash, err := auth.HashPassphrase(passphrase)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, hash)
	return subcommands.ExitSuccess
}
