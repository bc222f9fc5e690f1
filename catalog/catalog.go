// Package catalog rewrites gettext PO catalogs line by line, substituting a
// translation for the msgstr of every msgid/msgstr pair.
//
// The transform works on physical lines and keeps a 1:1 line mapping: every
// line is either copied byte for byte or is a rewritten msgstr line. Only a
// msgstr line that follows a msgid line is rewritten; comments, msgctxt,
// plural forms and continuation strings are copied unchanged.
//
// Known limitations:
//
//   - Quoted text is taken as written. Escape sequences such as \" or \n in
//     a msgid are not decoded before the text is handed to the translator.
//   - Multiline values are not reconstructed. Only the quoted text on the
//     msgid line itself is translated; continuation lines are kept as they
//     are, including continuation lines of the old msgstr.
//   - A msgid without a following msgstr is left alone.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	idMarker  = "msgid "
	strMarker = "msgstr "
)

// ErrNoTranslator is the failure recorded for every entry when a
// Transformer has no translate function.
var ErrNoTranslator = errors.New("no translate function")

// Func translates one source string.
type Func func(ctx context.Context, text string) (string, error)

// Entry is one msgid/msgstr pair of a catalog.
type Entry struct {
	// ID is the quoted text of the msgid line, without the quotes.
	ID string
	// Translation is the text written into the msgstr line.
	Translation string
	// IDLine and StrLine are the 0-based indexes of the msgid and msgstr lines.
	IDLine  int
	StrLine int
}

// IsHeader reports whether e is the catalog header entry (msgid "").
func (e Entry) IsHeader() bool {
	return e.ID == ""
}

// Outcome is the result of translating one entry. A non-nil Err means the
// translation failed and the source text was substituted.
type Outcome struct {
	Text string
	Err  error
}

// Failed reports whether the translation failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Event is passed to an Observer after each translatable entry.
type Event struct {
	// Index counts translatable entries processed so far, starting at 1.
	Index int
	// Total is the number of translatable entries in the catalog.
	Total   int
	Entry   Entry
	Outcome Outcome
}

// Observer is notified after every translatable entry, in source order.
type Observer func(Event)

// Observers fans an event out to every non-nil observer.
func Observers(observers ...Observer) Observer {
	return func(ev Event) {
		for _, o := range observers {
			if o != nil {
				o(ev)
			}
		}
	}
}

// EntryError records a failed translation.
type EntryError struct {
	Entry Entry
	Err   error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("line %d: translating %q: %v", e.Entry.IDLine+1, e.Entry.ID, e.Err)
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a Transform.
type Result struct {
	// Lines has the same length as the input lines.
	Lines []string
	// Entries lists the rewritten entries, header entries included.
	Entries []Entry
	// Translated and Failed count translatable entries.
	Translated int
	Failed     int
	// Headers counts msgid "" entries, which are never translated.
	Headers int
	Errors  []EntryError
	// Interrupted is set when the context was done before all entries were
	// translated. Pending msgstr lines are then copied unchanged.
	Interrupted bool
}

// Transformer rewrites catalogs using Translate.
type Transformer struct {
	Translate Func
	Observer  Observer
}

// Transform produces the rewritten catalog for lines. It never fails on a
// single translation: the source text is used instead and the error is
// recorded in the Result.
func (t *Transformer) Transform(ctx context.Context, lines []string) *Result {
	res := &Result{Lines: make([]string, len(lines))}
	total := len(Plan(lines))
	index := 0

	var sc scanner
	for i, line := range lines {
		if sc.feed(i, line) != stepString {
			res.Lines[i] = line
			continue
		}

		entry := Entry{ID: sc.id, IDLine: sc.idLine, StrLine: i}
		if entry.IsHeader() {
			res.Headers++
			res.Lines[i] = rewrite(line, "")
			res.Entries = append(res.Entries, entry)
			continue
		}
		if res.Interrupted || ctx.Err() != nil {
			res.Interrupted = true
			res.Lines[i] = line
			continue
		}

		out := t.translate(ctx, entry.ID)
		if out.Failed() && ctx.Err() != nil {
			res.Interrupted = true
			res.Lines[i] = line
			continue
		}

		if out.Failed() {
			entry.Translation = entry.ID
			res.Failed++
			res.Errors = append(res.Errors, EntryError{Entry: entry, Err: out.Err})
		} else {
			entry.Translation = escape(out.Text)
			res.Translated++
		}
		res.Lines[i] = rewrite(line, entry.Translation)
		res.Entries = append(res.Entries, entry)

		index++
		if t.Observer != nil {
			t.Observer(Event{Index: index, Total: total, Entry: entry, Outcome: out})
		}
	}
	return res
}

func (t *Transformer) translate(ctx context.Context, text string) Outcome {
	if t.Translate == nil {
		return Outcome{Err: ErrNoTranslator}
	}
	translated, err := t.Translate(ctx, text)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Text: translated}
}

// Plan returns the entries Transform would send to the translator, in
// source order. Translation is left empty.
func Plan(lines []string) []Entry {
	var entries []Entry
	var sc scanner
	for i, line := range lines {
		if sc.feed(i, line) == stepString && sc.id != "" {
			entries = append(entries, Entry{ID: sc.id, IDLine: sc.idLine, StrLine: i})
		}
	}
	return entries
}

// rewrite builds the msgstr line replacing line. A CRLF terminator is kept;
// anything else becomes "\n".
func rewrite(line, text string) string {
	eol := "\n"
	if strings.HasSuffix(line, "\r\n") {
		eol = "\r\n"
	}
	return strMarker + `"` + text + `"` + eol
}

// escape makes translated text safe inside a quoted PO string. Valid
// escape sequences are kept as they are; any other backslash is doubled.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if n := escapeLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n - 1
			} else {
				b.WriteString(`\\`)
			}
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// escapeLen returns the length of the PO escape sequence at the start of s,
// or 0 when s does not start with one. Octal escapes need three digits.
func escapeLen(s string) int {
	if len(s) < 2 || s[0] != '\\' {
		return 0
	}
	switch s[1] {
	case '\\', '"', 'n', 't', 'r', 'a', 'b', 'f', 'v':
		return 2
	}
	if len(s) >= 4 && s[1] >= '0' && s[1] <= '3' && isOctal(s[2]) && isOctal(s[3]) {
		return 4
	}
	return 0
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
