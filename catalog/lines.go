package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned by Decode when the input is not valid UTF-8.
var ErrNotText = errors.New("catalog is not valid UTF-8 text")

// DecodeError reports the byte offset of the first invalid sequence.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (invalid byte at offset %d)", ErrNotText, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return ErrNotText
}

// Decode checks that data is UTF-8 text and splits it into lines.
func Decode(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{Offset: invalidOffset(data)}
	}
	return SplitLines(string(data)), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// SplitLines splits s after every "\n". Each line keeps its terminator, so
// Join(SplitLines(s)) == s. A final line without a newline is kept as is.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Join concatenates lines produced by SplitLines or Transform.
func Join(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
	}
	return b.String()
}

// OutputPath derives the path of the translated catalog: the extension of
// path is replaced by "_<lang>.po" in the same directory.
func OutputPath(path, lang string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + lang + ".po"
}

// HeaderLanguage returns the value of the "Language:" header field, or ""
// when the catalog does not declare one.
func HeaderLanguage(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "\"Language:") {
			continue
		}
		lang := strings.TrimPrefix(trimmed, "\"Language:")
		lang = strings.TrimSuffix(lang, "\"")
		lang = strings.TrimSuffix(lang, "\\n")
		lang = strings.TrimSpace(lang)
		if lang != "" {
			return lang
		}
	}
	return ""
}
