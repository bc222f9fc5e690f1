package catalog

import (
	"errors"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single terminated", "a\n", []string{"a\n"}},
		{"unterminated tail", "a\nb", []string{"a\n", "b"}},
		{"blank lines", "a\n\n\nb\n", []string{"a\n", "\n", "\n", "b\n"}},
		{"crlf", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("SplitLines(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
			if joined := Join(got); joined != tt.input {
				t.Errorf("Join(SplitLines(%q)) = %q", tt.input, joined)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	lines, err := Decode([]byte("msgid \"Café\"\nmsgstr \"\"\n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("Decode() returned %d lines, want 2", len(lines))
	}

	_, err = Decode([]byte("msgid \"ok\"\n\xff\xfe"))
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("Decode() error = %v, want ErrNotText", err)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Decode() error = %T, want *DecodeError", err)
	}
	if decodeErr.Offset != 11 {
		t.Errorf("Offset = %d, want 11", decodeErr.Offset)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path     string
		lang     string
		expected string
	}{
		{"de.po", "fr", "de_fr.po"},
		{"/tmp/locale/de/LC_MESSAGES/de.po", "it", "/tmp/locale/de/LC_MESSAGES/de_it.po"},
		{"messages.pot", "es", "messages_es.po"},
		{"dir.v2/messages", "pt-BR", "dir.v2/messages_pt-BR.po"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.path, tt.lang); got != tt.expected {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.path, tt.lang, got, tt.expected)
		}
	}
}

func TestHeaderLanguage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"declared", "msgid \"\"\nmsgstr \"\"\n\"Language: de\\n\"\n", "de"},
		{"empty value", "msgid \"\"\nmsgstr \"\"\n\"Language: \\n\"\n", ""},
		{"missing", "msgid \"\"\nmsgstr \"\"\n", ""},
		{"region", "\"Language: pt_BR\\n\"\r\n", "pt_BR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeaderLanguage(SplitLines(tt.input)); got != tt.expected {
				t.Errorf("HeaderLanguage() = %q, want %q", got, tt.expected)
			}
		})
	}
}
