// Package report prints the end-of-run summary on the terminal.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/mevdschee/potx/catalog"
)

var (
	title  = color.New(color.Bold, color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.Bold, color.FgYellow)
	red    = color.New(color.FgRed)
)

// Summary holds the totals of one run.
type Summary struct {
	Output      string
	Elapsed     time.Duration
	Translated  int
	Failed      int
	Interrupted bool
	// Errors lists every error of the run, per-entry failures included.
	Errors []string
}

// Print writes the final report for s to w.
func Print(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	title.Fprintln(w, "--- Final report ---")
	if s.Output != "" {
		fmt.Fprintf(w, "Output file: %s\n", s.Output)
	}
	fmt.Fprintf(w, "Total time: %.2f seconds\n", s.Elapsed.Seconds())
	green.Fprintf(w, "Translated: %d\n", s.Translated)
	if s.Failed > 0 {
		yellow.Fprintf(w, "Fell back to source text: %d\n", s.Failed)
	}
	if s.Interrupted {
		yellow.Fprintln(w, "Interrupted: remaining entries were left untranslated")
	}

	errorCount := red
	if len(s.Errors) == 0 {
		errorCount = green
	}
	errorCount.Fprintf(w, "Total errors: %d\n", len(s.Errors))
	if len(s.Errors) > 0 {
		fmt.Fprintln(w, "\nError details:")
		for _, e := range s.Errors {
			red.Fprintf(w, "- %s\n", e)
		}
	}
}

// PrintPlan lists the entries a run would translate.
func PrintPlan(w io.Writer, input string, entries []catalog.Entry) {
	title.Fprintf(w, "%s: %d string(s) to translate\n", input, len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  line %d: %q\n", e.IDLine+1, e.ID)
	}
}
