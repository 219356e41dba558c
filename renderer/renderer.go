// Package renderer builds the markdown views the CLI prints: the execution
// table of a run and the interpreted import report.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	tvimport "github.com/nall/tv-importofx"
)

// Executions renders the batch as a markdown table with a cost footer.
func Executions(execs []tvimport.Execution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Executions (%d)\n\n", len(execs))
	if len(execs) == 0 {
		b.WriteString("Nothing to import.\n")
		return b.String()
	}

	b.WriteString("| # | Date/Time (GMT) | Symbol | Option | Qty | Price | Commission | Fees |\n")
	b.WriteString("|--:|---|---|---|--:|--:|--:|--:|\n")
	commissions := decimal.Zero
	fees := decimal.Zero
	for i, e := range execs {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			i+1, e.DateTime, e.Symbol, e.Option, e.Quantity, e.Price, e.Commission, e.TransFee)
		commissions = commissions.Add(e.Commission)
		fees = fees.Add(e.TransFee)
	}
	fmt.Fprintf(&b, "\nTotal commissions %s, total fees %s.\n", usd(commissions), usd(fees))
	return b.String()
}

// usd formats a decimal amount as US dollars, the only currency the
// journaling service deals in.
func usd(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), money.USD).Display()
}

// ImportReport renders the interpreted outcome of an upload. For failures
// it shows the actual failing execution, recovered from the uploaded batch
// by the reported index.
func ImportReport(res *tvimport.ImportResult, execs []tvimport.Execution) string {
	var b strings.Builder
	switch res.Outcome {
	case tvimport.OutcomeSucceeded:
		fmt.Fprintf(&b, "# Import succeeded\n\n%d of %d executions imported.\n", res.Imported, len(execs))
		if res.Partial() {
			b.WriteString("\nThe service skipped part of the batch:\n\n")
			if res.Duplicates > 0 {
				fmt.Fprintf(&b, "- %d duplicate executions\n", res.Duplicates)
			}
			if res.OverQuota > 0 {
				fmt.Fprintf(&b, "- %d executions over the import quota\n", res.OverQuota)
			}
			if res.SkippedFutures {
				b.WriteString("- futures executions were skipped\n")
			}
			if res.SkippedOptions {
				b.WriteString("- options executions were skipped\n")
			}
			if res.SkippedForex {
				b.WriteString("- forex executions were skipped\n")
			}
		}
	case tvimport.OutcomeFailed:
		fmt.Fprintf(&b, "# Import failed\n\n%s\n\n%d of %d executions were not imported.\n",
			res.ErrorDescription, res.Unimported(len(execs)), len(execs))
		if i := res.FailingIndex(); i >= 0 && i < len(execs) {
			e := execs[i]
			fmt.Fprintf(&b, "\nFailing execution #%d: %s %s %s @ %s\n", i+1, e.DateTime, e.Symbol, e.Quantity, e.Price)
			if e.Option != "" {
				fmt.Fprintf(&b, "Option: %s\n", e.Option)
			}
		}
	default:
		fmt.Fprintf(&b, "# Import ended with unexpected status %q\n\nCheck the service's import view before retrying.\n", res.RawStatus)
	}
	return b.String()
}
