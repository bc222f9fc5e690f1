package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mevdschee/potx/catalog"
)

func TestBarObserve(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "de.po", 2)

	b.Observe(catalog.Event{Index: 1, Total: 2, Outcome: catalog.Outcome{Text: "Bonjour"}})
	b.Observe(catalog.Event{Index: 2, Total: 2, Outcome: catalog.Outcome{Err: errors.New("timeout")}})
	b.Finish()

	if b.failed != 1 {
		t.Errorf("failed = %d, want 1", b.failed)
	}
	out := buf.String()
	if !strings.Contains(out, "2/2") {
		t.Errorf("progress output does not show the count:\n%q", out)
	}
	if !strings.Contains(out, "de.po") {
		t.Errorf("progress output does not show the file name:\n%q", out)
	}
}

func TestNilBar(t *testing.T) {
	var b *Bar
	b.Observe(catalog.Event{})
	b.Finish()
}
