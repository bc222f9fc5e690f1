package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so a failed write never leaves a truncated catalog.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// promptMissing returns the catalog path and target language from args,
// asking on r for whatever is missing.
func promptMissing(r io.Reader, w io.Writer, args []string) (string, string, error) {
	var input, lang string
	if len(args) > 0 {
		input = strings.TrimSpace(args[0])
	}
	if len(args) > 1 {
		lang = strings.TrimSpace(args[1])
	}
	if input != "" && lang != "" {
		return input, lang, nil
	}

	reader := bufio.NewReader(r)
	ask := func(question string) (string, error) {
		fmt.Fprint(w, question)
		answer, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || answer == "") {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return strings.TrimSpace(answer), nil
	}

	var err error
	if input == "" {
		if input, err = ask("Enter the path of the .po file: "); err != nil {
			return "", "", err
		}
	}
	if lang == "" {
		if lang, err = ask("Enter the target language code (e.g. 'it', 'en', 'fr'): "); err != nil {
			return "", "", err
		}
	}
	return input, lang, nil
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
