package interpret

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Completer sends one prompt and returns the model's reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLM interprets feedback with a chat-completion model.
type LLM struct {
	c     Completer
	calls atomic.Int64
}

// NewLLM wraps c.
func NewLLM(c Completer) *LLM { return &LLM{c: c} }

// Calls reports how many completions were requested.
func (l *LLM) Calls() int64 { return l.calls.Load() }

// Interpret implements Interpreter. The reply is returned normalized but
// unvalidated; a bad reply surfaces later when the letters are parsed.
func (l *LLM) Interpret(ctx context.Context, guess, text string) (string, error) {
	l.calls.Add(1)
	out, err := l.c.Complete(ctx, Prompt(guess, text))
	if err != nil {
		return "", fmt.Errorf("interpret: completion: %w", err)
	}
	return normalizeReply(out), nil
}

// Prompt builds the instruction sent to the model for one guess.
func Prompt(guess, text string) string {
	var b strings.Builder
	b.WriteString("I'm playing Wordle. I guessed a word and received feedback on it. ")
	b.WriteString("Turn the feedback into the result string described below.\n")
	b.WriteString("my guess:\n")
	ordinals := []string{"first", "second", "third", "fourth", "fifth"}
	for i := 0; i < len(guess) && i < len(ordinals); i++ {
		fmt.Fprintf(&b, "  the %s letter is '%c',\n", ordinals[i], guess[i])
	}
	fmt.Fprintf(&b, "\nfeedback: %s\n\n", text)
	b.WriteString("The result string has one letter per position of the guess:\n")
	b.WriteString("1. 'B' if the answer has the same letter in that position.\n")
	b.WriteString("2. 'G' if the letter does not appear in the answer.\n")
	b.WriteString("3. If the letter is in the answer but elsewhere, 'Y' or 'G', such that:\n")
	b.WriteString("   - the number of B's and Y's for a letter never exceeds its count in the answer, and\n")
	b.WriteString("   - for each letter, all G's come after all Y's.\n")
	b.WriteString("Return ONLY the result string: 5 uppercase letters separated by spaces.")
	return b.String()
}

// OpenAIConfig selects the endpoint and model for OpenAICompleter.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAICompleter calls an OpenAI-compatible chat-completion endpoint.
type OpenAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter builds a client from cfg. An empty BaseURL uses the SDK default.
func NewOpenAICompleter(cfg OpenAIConfig) *OpenAICompleter {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAICompleter{client: openai.NewClient(opts...), model: cfg.Model}
}

// Complete implements Completer with a short, deterministic completion.
func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(10),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion %s", resp.ID)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
