// Package verify loads a rewritten catalog with gotext and checks that the
// substituted translations can be looked up again. A translation that does
// not resolve usually means the msgstr line was broken by bad quoting.
package verify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/mevdschee/potx/catalog"
)

// Problem is a rewritten entry whose translation gotext could not load.
type Problem struct {
	Entry catalog.Entry
	Got   string
	// Err is set when the msgstr text is not a valid quoted string.
	Err error
}

func (p Problem) String() string {
	if p.Err != nil {
		return fmt.Sprintf("line %d: msgstr for %q is not a valid PO string: %v",
			p.Entry.StrLine+1, p.Entry.ID, p.Err)
	}
	return fmt.Sprintf("line %d: %q resolves to %q, want %q",
		p.Entry.StrLine+1, p.Entry.ID, p.Got, p.Entry.Translation)
}

// Check parses lines as a PO catalog and looks up every entry of entries.
// A msgstr that is not a valid quoted string is always reported. Entries
// that gotext cannot be compared against are skipped: the header, fallbacks
// equal to the source text, multiline and fuzzy entries, and source text
// that is itself not a valid quoted string.
func Check(lines []string, entries []catalog.Entry) []Problem {
	po := gotext.NewPo()
	po.Parse([]byte(catalog.Join(lines)))
	plain := po.GetDomain().GetTranslations()
	byContext := po.GetDomain().GetCtxTranslations()

	var problems []Problem
	for _, e := range entries {
		if e.IsHeader() || e.Translation == e.ID || multiline(lines, e) {
			continue
		}
		want, err := unquote(e.Translation)
		if err != nil {
			problems = append(problems, Problem{Entry: e, Err: err})
			continue
		}
		ctx, fuzzy := preamble(lines, e.IDLine)
		if fuzzy {
			continue
		}
		id, err := unquote(e.ID)
		if err != nil {
			continue
		}

		tr := plain[id]
		if ctx != "" {
			tr = byContext[ctx][id]
		}
		var got string
		if tr != nil {
			got = tr.Get()
		}
		if got != want {
			problems = append(problems, Problem{Entry: e, Got: got})
		}
	}
	return problems
}

func multiline(lines []string, e catalog.Entry) bool {
	for _, i := range []int{e.IDLine + 1, e.StrLine + 1} {
		if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), `"`) {
			return true
		}
	}
	return false
}

// preamble walks back over the comment and msgctxt lines preceding a msgid.
func preamble(lines []string, idLine int) (ctx string, fuzzy bool) {
	for i := idLine - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, "msgctxt "):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "msgctxt "))
			if c, err := unquote(strings.Trim(rest, `"`)); err == nil {
				ctx = c
			}
		case strings.HasPrefix(line, "#,"):
			if strings.Contains(line, "fuzzy") {
				fuzzy = true
			}
		case strings.HasPrefix(line, "#"):
		default:
			return ctx, fuzzy
		}
	}
	return ctx, fuzzy
}

func unquote(s string) (string, error) {
	return strconv.Unquote(`"` + s + `"`)
}
