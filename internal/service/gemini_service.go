package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/applify/internal/config"
	"github.com/fadilmartias/applify/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	geminiProviderName = "gemini"
	defaultGeminiModel = "gemini-2.0-flash"
	maxLogLength       = 300
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiService is the primary provider, backed by the Gemini API.
type GeminiService struct {
	models         contentGenerator
	model          string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
	logger         *zap.Logger
}

var _ Provider = (*GeminiService)(nil)

// NewGeminiService returns an unavailable service when no API key is configured.
func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) (*GeminiService, error) {
	if cfg == nil {
		cfg = &config.GeminiConfig{}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	s := &GeminiService{
		model:          model,
		MaxRetries:     cfg.MaxRetries,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		RequestTimeout: cfg.Timeout,
		logger:         logger.WithCommonFields(log, geminiProviderName, model),
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 120 * time.Second
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		s.logger.Info("GEMINI_API_KEY not set, provider disabled")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	s.models = client.Models
	return s, nil
}

func (s *GeminiService) Name() string { return geminiProviderName }

func (s *GeminiService) Model() string { return s.model }

func (s *GeminiService) Available() bool {
	return s != nil && s.models != nil
}

func (s *GeminiService) Attempt(ctx context.Context, prompt string) AttemptResult {
	if !s.Available() {
		return failed(geminiProviderName, ErrProviderUnavailable)
	}

	s.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, maxLogLength)),
	)

	text, err := s.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn("gemini attempt failed", zap.Error(err))
		return failed(geminiProviderName, err)
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", logger.TruncateForLog(text, maxLogLength)),
	)
	return answered(geminiProviderName, text)
}

// GenerateContent sends the prompt and returns the concatenated text parts,
// retrying rate limits and server errors with exponential backoff.
func (s *GeminiService) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.4)),
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context done during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.models.GenerateContent(timeoutCtx, s.model, genai.Text(prompt), genConfig)
		if err == nil {
			if err := validateGenerateResponse(result); err != nil {
				return "", fmt.Errorf("invalid response: %w", err)
			}
			return responseText(result)
		}

		lastErr = err
		if !isRetryableError(err) {
			return "", fmt.Errorf("generate content failed: %w", err)
		}
		s.logger.Debug("retryable gemini error", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "eof")
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		builder.WriteString(part.Text)
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini returned empty response")
	}
	return output, nil
}
