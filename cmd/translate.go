package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mevdschee/potx/catalog"
	"github.com/mevdschee/potx/config"
	"github.com/mevdschee/potx/progress"
	"github.com/mevdschee/potx/report"
	"github.com/mevdschee/potx/runlog"
	"github.com/mevdschee/potx/translate"
	"github.com/mevdschee/potx/verify"
)

// job translates one catalog into one language.
type job struct {
	cfg    *config.Config
	input  string
	lang   string
	stdout io.Writer
	stderr io.Writer

	// backend builds the translation function; translate.Google when nil.
	backend func(source, target string) catalog.Func
	// progress overrides the terminal check for the progress bar.
	progress func() bool
}

func (j *job) run(ctx context.Context) error {
	start := time.Now()

	var runLog *runlog.Log
	if j.cfg.LogDir != "" && !j.cfg.DryRun {
		l, err := runlog.Open(j.cfg.LogDir, j.input, j.lang)
		if err != nil {
			return err
		}
		defer l.Close()
		runLog = l
	}
	runLog.Start(j.input, j.lang)

	lines, err := readCatalog(j.input)
	if err != nil {
		runLog.Error(err)
		runLog.Finish()
		return err
	}

	if j.cfg.DryRun {
		report.PrintPlan(j.stdout, j.input, catalog.Plan(lines))
		return nil
	}

	source := j.sourceLanguage(lines)
	log.Debugf("translating %s from %s to %s", j.input, source, j.lang)

	var bar *progress.Bar
	if total := len(catalog.Plan(lines)); total > 0 && j.showProgress() {
		bar = progress.New(j.stderr, filepath.Base(j.input), total)
	}

	tr := &catalog.Transformer{
		Translate: j.translateFunc(source),
		Observer:  catalog.Observers(bar.Observe, runLog.Observe, logEntry),
	}
	res := tr.Transform(ctx, lines)
	bar.Finish()
	if res.Interrupted {
		log.Warn("interrupted by user, writing partial translation")
	}

	errs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		errs = append(errs, e.Error())
	}

	output := catalog.OutputPath(j.input, j.lang)
	writeErr := writeFileAtomic(output, []byte(catalog.Join(res.Lines)))
	if writeErr != nil {
		writeErr = fmt.Errorf("saving translated catalog: %w", writeErr)
		errs = append(errs, writeErr.Error())
		runLog.Error(writeErr)
		output = ""
	} else {
		runLog.Saved(output)
		log.Infof("translated file saved to: %s", output)
		if j.cfg.Verify {
			for _, p := range verify.Check(res.Lines, res.Entries) {
				log.Warnf("written catalog does not load as expected: %s", p)
			}
		}
	}
	runLog.Finish()

	report.Print(j.stdout, report.Summary{
		Output:      output,
		Elapsed:     time.Since(start),
		Translated:  res.Translated,
		Failed:      res.Failed,
		Interrupted: res.Interrupted,
		Errors:      errs,
	})

	if writeErr != nil {
		return writeErr
	}
	if res.Interrupted {
		return errInterrupted
	}
	return nil
}

// sourceLanguage picks the configured source language. A template (.pot)
// declares its source language in the Language header; a .po file declares
// its own translation language there, so it is not used.
func (j *job) sourceLanguage(lines []string) string {
	if j.cfg.SourceLang != "" {
		return j.cfg.SourceLang
	}
	if strings.EqualFold(filepath.Ext(j.input), ".pot") {
		if lang := catalog.HeaderLanguage(lines); lang != "" {
			return lang
		}
	}
	return translate.AutoDetect
}

func (j *job) translateFunc(source string) catalog.Func {
	backend := j.backend
	if backend == nil {
		backend = translate.Google
	}
	fn := backend(source, j.lang)
	fn = translate.Timeout(fn, j.cfg.Timeout)
	fn = translate.Retry(fn, j.cfg.MaxRetries, j.cfg.RetryBackoff)
	return translate.Throttle(fn, j.cfg.DelayDuration())
}

func (j *job) showProgress() bool {
	if !j.cfg.Progress {
		return false
	}
	if j.progress != nil {
		return j.progress()
	}
	return progress.Terminal(os.Stderr)
}

func logEntry(ev catalog.Event) {
	if ev.Outcome.Failed() {
		log.Warnf("translation failed for %q: %v", ev.Entry.ID, ev.Outcome.Err)
		return
	}
	log.Debugf("[%d/%d] %q -> %q", ev.Index, ev.Total, ev.Entry.ID, ev.Entry.Translation)
}

func readCatalog(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %s does not exist", path)
		}
		return nil, err
	}
	lines, err := catalog.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
