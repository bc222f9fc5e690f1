// Package progress shows a terminal progress bar while a catalog is being
// translated.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/mevdschee/potx/catalog"
)

// Bar advances once per processed entry.
type Bar struct {
	bar    *progressbar.ProgressBar
	name   string
	failed int
}

// New creates a bar for total entries labelled with name, drawn on w.
func New(w io.Writer, name string, total int) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", name)),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return &Bar{bar: bar, name: name}
}

// Terminal reports whether f is an interactive terminal.
func Terminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Observe advances the bar. It has the catalog.Observer signature.
func (b *Bar) Observe(ev catalog.Event) {
	if b == nil {
		return
	}
	if ev.Outcome.Failed() {
		b.failed++
		b.bar.Describe(fmt.Sprintf("[cyan]%s[reset] [red]%d failed[reset]", b.name, b.failed))
	}
	_ = b.bar.Add(1)
}

// Finish completes the bar, including when the run was interrupted.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.bar.Finish()
}
