package catalog

import "strings"

type state int

const (
	idle state = iota
	awaiting
)

type step int

const (
	stepCopy step = iota
	stepID
	stepString
)

// scanner is the single-pass state machine shared by Transform and Plan.
// A msgid line moves it to awaiting; a msgstr line while awaiting is the
// line to rewrite and moves it back to idle.
type scanner struct {
	state  state
	id     string
	idLine int
}

func (s *scanner) feed(i int, line string) step {
	if id, ok := parseID(line); ok {
		s.state = awaiting
		s.id = id
		s.idLine = i
		return stepID
	}
	if s.state == awaiting && strings.HasPrefix(line, strMarker) {
		s.state = idle
		return stepString
	}
	return stepCopy
}

// parseID extracts the quoted text of a msgid line. Exactly one leading and
// one trailing quote are removed; nothing is unescaped.
func parseID(line string) (string, bool) {
	if !strings.HasPrefix(line, idMarker) {
		return "", false
	}
	rest := strings.TrimSpace(line[len(idMarker):])
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}
