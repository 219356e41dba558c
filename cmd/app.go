// Package cmd implements the CLI application that imports OFX brokerage
// statements into the trade-journaling service.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	tvimport "github.com/nall/tv-importofx"
	"github.com/nall/tv-importofx/ofx"
)

// Commands lists every subcommand of the application, in display order.
var Commands = []subcommands.Command{
	&importCmd{},
	&executionsCmd{},
	&decodeCmd{},
	&setPasswordCmd{},
}

// as a CLI application with a very short lifecycle, global flags are fine.

var configFile = flag.String("config", "", "Path to the optional YAML configuration file")
var verbose = flag.Bool("v", false, "Enable debug logging")

// LoadConfig loads the application configuration, or plain defaults when
// -config is not set.
func LoadConfig() (*tvimport.Config, error) {
	return tvimport.LoadConfig(*configFile)
}

// Logger returns the application logger at the level selected by -v.
func Logger() *slog.Logger {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildExecutions loads the OFX statement and turns it into the execution
// batch, using the configured registries.
func buildExecutions(cfg *tvimport.Config, file string) (*tvimport.Feed, []tvimport.Execution, error) {
	feed, err := ofx.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}
	fixes, err := cfg.TimeFixes()
	if err != nil {
		return nil, nil, err
	}
	builder := &tvimport.Builder{
		Securities:  feed.Securities,
		Institution: feed.Institution,
		Remap:       cfg.TickerRemap(),
		TimeFixes:   fixes,
	}
	execs, err := builder.BuildAll(feed.Transactions)
	if err != nil {
		return nil, nil, err
	}
	return feed, execs, nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
