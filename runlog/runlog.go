// Package runlog writes the per-run translation log: start and end of the
// run, every original/translated pair and every error.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mevdschee/potx/catalog"
)

// FileName returns the log file name for translating input into lang,
// e.g. "logging_messages_fr_translation.log".
func FileName(input, lang string) string {
	stem := filepath.Base(input)
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	return fmt.Sprintf("logging_%s_%s_translation.log", stem, lang)
}

// Log records one run. A nil *Log discards everything, so callers do not
// need to check whether logging is enabled.
type Log struct {
	logger *logrus.Logger
	closer io.Closer
	start  time.Time
	errors []string
	now    func() time.Time
}

// Open creates dir if needed and truncates the log file for this run.
func Open(dir, input, lang string) (*Log, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	path := filepath.Join(dir, FileName(input, lang))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := New(f)
	l.closer = f
	return l, nil
}

// New returns a Log writing to w.
func New(w io.Writer) *Log {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Log{logger: logger, now: time.Now}
}

// Start records the beginning of the run.
func (l *Log) Start(input, lang string) {
	if l == nil {
		return
	}
	l.start = l.now()
	l.logger.WithFields(logrus.Fields{
		"file":   input,
		"target": lang,
	}).Info("starting translation of catalog")
	l.logger.Infof("start date: %s", l.start.Format("02/01/2006"))
	l.logger.Infof("start time: %s", l.start.Format("15:04:05"))
}

// Observe records one processed entry. It has the catalog.Observer
// signature.
func (l *Log) Observe(ev catalog.Event) {
	if l == nil {
		return
	}
	if ev.Outcome.Failed() {
		l.Error(fmt.Errorf("translating %q: %w", ev.Entry.ID, ev.Outcome.Err))
		return
	}
	l.logger.WithFields(logrus.Fields{
		"original":    ev.Entry.ID,
		"translation": ev.Entry.Translation,
	}).Info("translation completed")
}

// Saved records where the translated catalog was written.
func (l *Log) Saved(path string) {
	if l == nil {
		return
	}
	l.logger.Infof("translated file saved to: %s", path)
}

// Error records an error and counts it in the final totals.
func (l *Log) Error(err error) {
	if l == nil || err == nil {
		return
	}
	l.errors = append(l.errors, err.Error())
	l.logger.Error(err.Error())
}

// Finish records the elapsed time and error totals.
func (l *Log) Finish() {
	if l == nil {
		return
	}
	end := l.now()
	l.logger.Infof("translation completed in %.2f seconds", end.Sub(l.start).Seconds())
	l.logger.Infof("end date: %s", end.Format("02/01/2006"))
	l.logger.Infof("end time: %s", end.Format("15:04:05"))
	l.logger.Infof("total errors: %d", len(l.errors))
	if len(l.errors) > 0 {
		l.logger.Info("error details:")
		for _, e := range l.errors {
			l.logger.Infof("- %s", e)
		}
	}
}

// Close closes the underlying file, if any.
func (l *Log) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
