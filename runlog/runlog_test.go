package runlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mevdschee/potx/catalog"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		input    string
		lang     string
		expected string
	}{
		{"de.po", "fr", "logging_de_fr_translation.log"},
		{"/srv/locale/messages.po", "it", "logging_messages_it_translation.log"},
		{"app.backup.po", "es", "logging_app_es_translation.log"},
	}

	for _, tt := range tests {
		if got := FileName(tt.input, tt.lang); got != tt.expected {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.input, tt.lang, got, tt.expected)
		}
	}
}

func TestLogRun(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	clock := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time {
		clock = clock.Add(1500 * time.Millisecond)
		return clock
	}

	l.Start("de.po", "fr")
	l.Observe(catalog.Event{
		Index:   1,
		Total:   2,
		Entry:   catalog.Entry{ID: "Hello", Translation: "Bonjour"},
		Outcome: catalog.Outcome{Text: "Bonjour"},
	})
	l.Observe(catalog.Event{
		Index:   2,
		Total:   2,
		Entry:   catalog.Entry{ID: "Bye", Translation: "Bye"},
		Outcome: catalog.Outcome{Err: errors.New("quota exceeded")},
	})
	l.Saved("de_fr.po")
	l.Finish()

	out := buf.String()
	for _, want := range []string{
		"starting translation of catalog",
		"start date: 09/03/2024",
		"original=Hello",
		"translation=Bonjour",
		"quota exceeded",
		"translated file saved to: de_fr.po",
		"translation completed in 1.50 seconds",
		"total errors: 1",
		"error details:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log does not contain %q:\n%s", want, out)
		}
	}
}

func TestNilLog(t *testing.T) {
	var l *Log
	l.Start("de.po", "fr")
	l.Observe(catalog.Event{})
	l.Error(errors.New("ignored"))
	l.Finish()
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	l, err := Open(dir, "de.po", "fr")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	l.Start("de.po", "fr")
	l.Finish()
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "logging_de_fr_translation.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "total errors: 0") {
		t.Errorf("log file missing totals:\n%s", content)
	}
}
