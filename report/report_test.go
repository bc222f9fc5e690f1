package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/mevdschee/potx/catalog"
)

func init() {
	color.NoColor = true
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    []string
		notWant []string
	}{
		{
			name: "clean run",
			summary: Summary{
				Output:     "de_fr.po",
				Elapsed:    2500 * time.Millisecond,
				Translated: 3,
			},
			want:    []string{"Output file: de_fr.po", "Total time: 2.50 seconds", "Translated: 3", "Total errors: 0"},
			notWant: []string{"Error details", "Interrupted"},
		},
		{
			name: "with failures",
			summary: Summary{
				Translated: 1,
				Failed:     1,
				Errors:     []string{`line 4: translating "Hello": timeout`},
			},
			want: []string{"Fell back to source text: 1", "Total errors: 1", "Error details:", `- line 4: translating "Hello": timeout`},
		},
		{
			name:    "interrupted",
			summary: Summary{Interrupted: true},
			want:    []string{"Interrupted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Print(&buf, tt.summary)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("report does not contain %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("report unexpectedly contains %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	PrintPlan(&buf, "de.po", []catalog.Entry{
		{ID: "Hello", IDLine: 7},
		{ID: "Open %s", IDLine: 12},
	})

	out := buf.String()
	for _, w := range []string{"de.po: 2 string(s) to translate", `line 8: "Hello"`, `line 13: "Open %s"`} {
		if !strings.Contains(out, w) {
			t.Errorf("plan does not contain %q:\n%s", w, out)
		}
	}
}
