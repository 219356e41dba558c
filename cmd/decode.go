package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	tvimport "github.com/nall/tv-importofx"
)

type decodeCmd struct{}

func (*decodeCmd) Name() string     { return "decode" }
func (*decodeCmd) Synopsis() string { return "decodes OCC option symbols" }
func (*decodeCmd) Usage() string {
	return `tvi decode <symbol>...

  Decodes each OCC option symbol and prints its components.

Usage Examples:
$ tvi decode AAPL240119C00150000
$ tvi decode SPY8240119C00150000 SPX240119P04800000

`
}

func (*decodeCmd) SetFlags(f *flag.FlagSet) {}

func (p *decodeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required.")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	var md strings.Builder
	md.WriteString("| Symbol | Underlying | Expiry | Type | Strike | Mini |\n")
	md.WriteString("| --- | --- | --- | --- | ---: | --- |\n")
	for _, sym := range f.Args() {
		info, err := tvimport.DecodeOptionSymbol(sym)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q: %v\n", sym, err)
			status = subcommands.ExitFailure
			continue
		}
		mini := ""
		if info.Mini {
			mini = "yes"
		}
		fmt.Fprintf(&md, "| %s | %s | 20%02d-%02d-%02d | %s | %s | %s |\n",
			sym, info.Underlying, info.Year, info.Month, info.Day, info.Type, info.Strike, mini)
	}
	printMarkdown(md.String())
	return status
}
