// internal/interpret/interpret.go
//
// Feedback interpreters turn free-text feedback about a guess into the
// five-letter b/y/g form read by feedback.ParseLetters.
//
//   - Literal: accepts text that already is the letter form.
//   - LLM:     asks a chat-completion model to translate the text.
//   - Chain:   first interpreter that succeeds wins.
//
// Interpreters are treated as unreliable: callers must cope with wrong
// letters, not only with errors.
package interpret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
)

// ErrUninterpretable is returned when no interpreter could read the text.
var ErrUninterpretable = errors.New("interpret: feedback not understood")

// Interpreter converts feedback text for guess into b/y/g letters.
type Interpreter interface {
	Interpret(ctx context.Context, guess, text string) (string, error)
}

// Func adapts a function to Interpreter.
type Func func(ctx context.Context, guess, text string) (string, error)

// Interpret calls f.
func (f Func) Interpret(ctx context.Context, guess, text string) (string, error) {
	return f(ctx, guess, text)
}

// Literal passes through text that already parses as letters.
type Literal struct{}

// Interpret implements Interpreter.
func (Literal) Interpret(_ context.Context, _ string, text string) (string, error) {
	p, err := feedback.ParseLetters(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUninterpretable, err)
	}
	return p.String(), nil
}

// Chain tries each interpreter in order.
type Chain []Interpreter

// Interpret implements Interpreter.
func (c Chain) Interpret(ctx context.Context, guess, text string) (string, error) {
	var errs []error
	for _, in := range c {
		out, err := in.Interpret(ctx, guess, text)
		if err == nil {
			return out, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrUninterpretable
	}
	return "", errors.Join(errs...)
}

// normalizeReply lowercases a model reply and removes all whitespace,
// so "B Y G G B" becomes "byggb".
func normalizeReply(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
