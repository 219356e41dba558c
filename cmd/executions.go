package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/nall/tv-importofx/renderer"
)

type executionsCmd struct {
	file string
}

func (*executionsCmd) Name() string     { return "executions" }
func (*executionsCmd) Synopsis() string { return "prints the executions built from an OFX statement" }
func (*executionsCmd) Usage() string {
	return `tvi executions -f <statement.ofx>

  Reads the statement and prints the executions that an import would
  upload, without contacting the journaling service.

`
}

func (p *executionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "f", "", "OFX statement file to read.")
}

func (p *executionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f <statement.ofx> is required.")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	feed, execs, err := buildExecutions(cfg, p.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Executions(execs))
	if skipped := len(feed.Transactions) - len(execs); skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d non-trade transactions.\n", skipped)
	}
	return subcommands.ExitSuccess
}
