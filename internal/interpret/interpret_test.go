package interpret

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestLiteral(t *testing.T) {
	out, err := Literal{}.Interpret(context.Background(), "crane", "B Y G G B")
	require.NoError(t, err)
	assert.Equal(t, "byggb", out)

	_, err = Literal{}.Interpret(context.Background(), "crane", "the c is right")
	assert.True(t, errors.Is(err, ErrUninterpretable))
}

func TestLLM(t *testing.T) {
	fc := &fakeCompleter{reply: " G G B G B\n"}
	l := NewLLM(fc)

	out, err := l.Interpret(context.Background(), "flame", "a and e are in place, nothing else fits")
	require.NoError(t, err)
	assert.Equal(t, "ggbgb", out)
	assert.EqualValues(t, 1, l.Calls())

	require.Len(t, fc.prompts, 1)
	assert.Contains(t, fc.prompts[0], "the first letter is 'f'")
	assert.Contains(t, fc.prompts[0], "the fifth letter is 'e'")
	assert.Contains(t, fc.prompts[0], "feedback: a and e are in place")
}

func TestLLMError(t *testing.T) {
	l := NewLLM(&fakeCompleter{err: errors.New("boom")})
	_, err := l.Interpret(context.Background(), "flame", "whatever")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "boom"))
	assert.EqualValues(t, 1, l.Calls())
}

func TestChain(t *testing.T) {
	fc := &fakeCompleter{reply: "BBBBB"}
	c := Chain{Literal{}, NewLLM(fc)}

	out, err := c.Interpret(context.Background(), "crane", "bgggg")
	require.NoError(t, err)
	assert.Equal(t, "bgggg", out)
	assert.Empty(t, fc.prompts, "literal text must not reach the model")

	out, err = c.Interpret(context.Background(), "crane", "you got it!")
	require.NoError(t, err)
	assert.Equal(t, "bbbbb", out)

	failing := Chain{Literal{}, Func(func(context.Context, string, string) (string, error) {
		return "", errors.New("offline")
	})}
	_, err = failing.Interpret(context.Background(), "crane", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUninterpretable))

	_, err = Chain{}.Interpret(context.Background(), "crane", "nope")
	assert.True(t, errors.Is(err, ErrUninterpretable))
}
