// Package translate provides translation functions for catalog.Transformer:
// a Google Translate backend and wrappers adding a pause between calls,
// retries and per-call timeouts.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bregydoc/gtranslate"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/mevdschee/potx/catalog"
)

// AutoDetect asks the backend to detect the source language.
const AutoDetect = "auto"

// Google returns a function translating from source to target through the
// public Google Translate endpoint. An empty source means AutoDetect.
func Google(source, target string) catalog.Func {
	if source == "" {
		source = AutoDetect
	}
	params := gtranslate.TranslationParams{
		From: source,
		To:   target,
	}

	return func(ctx context.Context, text string) (string, error) {
		type reply struct {
			text string
			err  error
		}
		done := make(chan reply, 1)
		go func() {
			translated, err := gtranslate.TranslateWithParams(text, params)
			done <- reply{translated, err}
		}()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case r := <-done:
			if r.err != nil {
				return "", fmt.Errorf("google translate %s->%s: %w", source, target, r.err)
			}
			return r.text, nil
		}
	}
}

// Throttle pauses for delay before every call except the first.
func Throttle(fn catalog.Func, delay time.Duration) catalog.Func {
	if delay <= 0 {
		return fn
	}
	first := true
	return func(ctx context.Context, text string) (string, error) {
		if !first {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
		first = false
		return fn(ctx, text)
	}
}

// Retry calls fn up to retries+1 times. The pause before the first retry
// is backoff and doubles after each further attempt.
func Retry(fn catalog.Func, retries int, backoff time.Duration) catalog.Func {
	if retries <= 0 {
		return fn
	}
	return func(ctx context.Context, text string) (string, error) {
		wait := backoff
		var err error
		for attempt := 0; attempt <= retries; attempt++ {
			if attempt > 0 {
				log.Debugf("retrying %q in %v (attempt %d/%d): %v", text, wait, attempt, retries, err)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(wait):
				}
				wait *= 2
			}

			var translated string
			translated, err = fn(ctx, text)
			if err == nil {
				return translated, nil
			}
			if ctx.Err() != nil {
				return "", err
			}
		}
		return "", fmt.Errorf("giving up after %d attempts: %w", retries+1, err)
	}
}

// Timeout bounds every call to fn by d.
func Timeout(fn catalog.Func, d time.Duration) catalog.Func {
	if d <= 0 {
		return fn
	}
	return func(ctx context.Context, text string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return fn(ctx, text)
	}
}

// ParseLanguage checks that code is a BCP 47 language tag. Underscore
// separated codes such as "pt_BR" are accepted.
func ParseLanguage(code string) (language.Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Und, fmt.Errorf("empty language code")
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag, nil
}
