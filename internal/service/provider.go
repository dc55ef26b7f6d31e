package service

import (
	"context"
	"errors"
	"strings"
)

// ErrProviderUnavailable is the reason recorded when a provider without
// credentials is asked to answer.
var ErrProviderUnavailable = errors.New("provider is not configured")

// Provider is one text-completion backend. Attempt never returns an error:
// every failure is folded into a no-answer AttemptResult.
type Provider interface {
	Name() string
	Model() string
	Available() bool
	Attempt(ctx context.Context, prompt string) AttemptResult
}

// AttemptResult is either answer text or the reason there was none.
type AttemptResult struct {
	Provider string `json:"provider"`
	Text     string `json:"-"`
	Reason   string `json:"reason,omitempty"`
}

// OK reports whether the provider produced usable text. Whitespace-only
// text counts as no answer.
func (r AttemptResult) OK() bool {
	return strings.TrimSpace(r.Text) != ""
}

func answered(provider, text string) AttemptResult {
	if strings.TrimSpace(text) == "" {
		return noAnswer(provider, "empty response")
	}
	return AttemptResult{Provider: provider, Text: text}
}

func noAnswer(provider, reason string) AttemptResult {
	if strings.TrimSpace(reason) == "" {
		reason = "no answer"
	}
	return AttemptResult{Provider: provider, Reason: reason}
}

func failed(provider string, err error) AttemptResult {
	if err == nil {
		return noAnswer(provider, "")
	}
	return noAnswer(provider, err.Error())
}
