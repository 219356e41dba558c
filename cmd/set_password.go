package cmd

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/nall/tv-importofx/creds"
)

type setPasswordCmd struct {
	username string
	delete   bool
}

func (*setPasswordCmd) Name() string     { return "set-password" }
func (*setPasswordCmd) Synopsis() string { return "stores the service password in the OS keyring" }
func (*setPasswordCmd) Usage() string {
	return `tvi set-password [-user <username>] [-delete]

  Prompts for the journaling service password and stores it in the OS
  keyring, so later imports do not need -password or an environment
  variable.

`
}

func (p *setPasswordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.username, "user", "", "Service username. Defaults to $"+creds.EnvUsername+" or the config file.")
	f.BoolVar(&p.delete, "delete", false, "Remove the stored password instead of setting it.")
}

func (p *setPasswordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	username := cmp.Or(p.username, os.Getenv(creds.EnvUsername), cfg.Username)
	if username == "" {
		fmt.Fprintln(os.Stderr, "Error: no username; use -user, $"+creds.EnvUsername+" or the config file.")
		return subcommands.ExitUsageError
	}

	if p.delete {
		if err := creds.Delete(username); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Password for %q removed from the keyring.\n", username)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Password for %q: ", username)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(raw) == 0 {
		fmt.Fprintln(os.Stderr, "Error: empty password.")
		return subcommands.ExitUsageError
	}
	if err := creds.Store(username, string(raw)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Password for %q stored in the keyring.\n", username)
	return subcommands.ExitSuccess
}
