package cmd

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	tvimport "github.com/nall/tv-importofx"
	"github.com/nall/tv-importofx/creds"
	"github.com/nall/tv-importofx/renderer"
	"github.com/nall/tv-importofx/tradervue"
)

// tagList collects repeatable -tag flags.
type tagList []string

func (t *tagList) String() string { return strings.Join(*t, ",") }

func (t *tagList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

type importCmd struct {
	file               string
	account            string
	tags               tagList
	allowDuplicates    bool
	overlayCommissions bool
	dryRun             bool
	username           string
	password           string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "imports an OFX statement into the trade journal" }
func (*importCmd) Usage() string {
	return `tvi import -f <statement.ofx> [-account <tag>] [-tag <tag>]... [-allow-duplicates] [-overlay-commissions] [-n]

  Builds one execution per trade in the statement and uploads the batch to
  the journaling service, waiting for the import to finish. Income entries
  are skipped; a statement with no trades is a clean no-op.

Usage Examples:
# Dry run: show what would be uploaded.
$ tvi import -f activity.ofx -n

# Import into the "ira" account with a tag.
$ tvi import -f activity.ofx -account ira -tag automated

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "f", "", "OFX statement file to import.")
	f.StringVar(&p.account, "account", "", "Account tag for the imported executions.")
	f.Var(&p.tags, "tag", "Tag to attach to the imported trades. May be repeated.")
	f.BoolVar(&p.allowDuplicates, "allow-duplicates", false, "Disable the service's duplicate detection.")
	f.BoolVar(&p.overlayCommissions, "overlay-commissions", false, "Overlay commissions and fees onto existing trades instead of creating new ones.")
	f.BoolVar(&p.dryRun, "n", false, "Build and print the executions without uploading.")
	f.StringVar(&p.username, "user", "", "Service username. Defaults to $"+creds.EnvUsername+" or the config file.")
	f.StringVar(&p.password, "password", "", "Service password. Prefer the OS keyring, see set-password.")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report := &tvimport.RunReport{
		Transactions: len(feed.Transactions),
		Executions:   len(execs),
		Skipped:      len(feed.Transactions) - len(execs),
	}

	printMarkdown(renderer.Executions(execs))
	if report.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d non-trade transactions.\n", report.Skipped)
	}

	if len(execs) == 0 {
		fmt.Fprintln(os.Stderr, "No executions to import.")
		return subcommands.ExitSuccess
	}
	if p.dryRun {
		return subcommands.ExitSuccess
	}

	username := cmp.Or(p.username, os.Getenv(creds.EnvUsername), cfg.Username)
	if username == "" {
		fmt.Fprintln(os.Stderr, "Error: no username; use -user, $"+creds.EnvUsername+" or the config file.")
		return subcommands.ExitUsageError
	}
	password, err := creds.Password(p.password, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client := tradervue.NewClient(cfg.ServiceURL, username, password, Logger())
	resp, err := client.Import(ctx, execs, tradervue.ImportOptions{
		AccountTag:         cmp.Or(p.account, cfg.AccountTag),
		Tags:               append(append([]string{}, cfg.Tags...), p.tags...),
		AllowDuplicates:    p.allowDuplicates,
		OverlayCommissions: p.overlayCommissions,
	})
	if err != nil {
		report.AddError(err)
		fmt.Fprintf(os.Stderr, "Upload error: %v\n", err)
	}

	res, err := tvimport.InterpretImportResponse(resp)
	if err != nil {
		// transport failure: no structured outcome to show, retry is up to
		// the user
		report.AddError(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report.Result = res

	printMarkdown(renderer.ImportReport(res, execs))
	if report.Failed() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
