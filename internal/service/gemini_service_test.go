package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/applify/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	lastModel string
	lastTemp  float32
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.lastModel = model
	if cfg != nil && cfg.Temperature != nil {
		f.lastTemp = *cfg.Temperature
	}

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return nil, errors.New("unexpected call")
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func newTestGemini(gen contentGenerator, retries int) *GeminiService {
	return &GeminiService{
		models:         gen,
		model:          "gemini-2.0-flash",
		MaxRetries:     retries,
		BaseDelay:      time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		RequestTimeout: time.Second,
		logger:         zap.NewNop(),
	}
}

func TestNewGeminiServiceWithoutKeyIsUnavailable(t *testing.T) {
	svc, err := NewGeminiService(context.Background(), &config.GeminiConfig{}, nil)
	require.NoError(t, err)

	assert.False(t, svc.Available())
	assert.Equal(t, "gemini", svc.Name())
	assert.Equal(t, "gemini-2.0-flash", svc.Model())

	result := svc.Attempt(context.Background(), "prompt")
	assert.False(t, result.OK())
	assert.Equal(t, ErrProviderUnavailable.Error(), result.Reason)
}

func TestGeminiAttemptConcatenatesParts(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{textResponse(`{"cv_text":`, `"T"}`)}}
	svc := newTestGemini(gen, 0)

	result := svc.Attempt(context.Background(), "prompt")

	require.True(t, result.OK())
	assert.Equal(t, `{"cv_text":"T"}`, result.Text)
	assert.Equal(t, "gemini-2.0-flash", gen.lastModel)
	assert.InDelta(t, 0.4, gen.lastTemp, 0.0001)
}

func TestGeminiRetriesServerErrors(t *testing.T) {
	gen := &fakeGenerator{
		errs:      []error{genai.APIError{Code: 503, Message: "overloaded"}, nil},
		responses: []*genai.GenerateContentResponse{nil, textResponse("answer")},
	}
	svc := newTestGemini(gen, 2)

	text, err := svc.GenerateContent(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "answer", text)
	assert.Equal(t, 2, gen.calls)
}

func TestGeminiDoesNotRetryClientErrors(t *testing.T) {
	gen := &fakeGenerator{errs: []error{genai.APIError{Code: 400, Message: "bad request"}}}
	svc := newTestGemini(gen, 3)

	result := svc.Attempt(context.Background(), "prompt")

	assert.False(t, result.OK())
	assert.Contains(t, result.Reason, "bad request")
	assert.Equal(t, 1, gen.calls)
}

func TestGeminiGivesUpAfterMaxRetries(t *testing.T) {
	quota := genai.APIError{Code: 429, Message: "quota exceeded"}
	gen := &fakeGenerator{errs: []error{quota, quota, quota}}
	svc := newTestGemini(gen, 2)

	_, err := svc.GenerateContent(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries (2) exceeded")
	assert.Equal(t, 3, gen.calls)
}

func TestGeminiRejectsEmptyOutput(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: "response is nil"},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: "no candidates"},
		{name: "blocked prompt", resp: &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
		}, want: "prompt blocked"},
		{name: "blank text", resp: textResponse("   "), want: "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{tt.resp}}
			result := newTestGemini(gen, 0).Attempt(context.Background(), "prompt")

			assert.False(t, result.OK())
			assert.Contains(t, result.Reason, tt.want)
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limited", err: genai.APIError{Code: 429}, want: true},
		{name: "server error", err: genai.APIError{Code: 500}, want: true},
		{name: "unauthorized", err: genai.APIError{Code: 401}, want: false},
		{name: "cancelled", err: context.Canceled, want: false},
		{name: "connection reset", err: errors.New("read: connection reset by peer"), want: true},
		{name: "unknown", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoffIsCapped(t *testing.T) {
	svc := &GeminiService{BaseDelay: time.Second, MaxDelay: 3 * time.Second}

	assert.Equal(t, time.Second, svc.calculateBackoff(1))
	assert.Equal(t, 2*time.Second, svc.calculateBackoff(2))
	assert.Equal(t, 3*time.Second, svc.calculateBackoff(3))
}
