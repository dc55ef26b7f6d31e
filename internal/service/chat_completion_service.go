package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fadilmartias/applify/internal/config"
	"github.com/fadilmartias/applify/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	deepSeekProviderName = "deepseek"
	openAIProviderName   = "openai"
)

// ChatCompletionService talks to any OpenAI-compatible /chat/completions endpoint.
type ChatCompletionService struct {
	name   string
	model  string
	apiKey string
	client *resty.Client
	logger *zap.Logger
}

var _ Provider = (*ChatCompletionService)(nil)

func NewDeepSeekService(cfg *config.DeepSeekConfig, log *zap.Logger) *ChatCompletionService {
	if cfg == nil {
		cfg = &config.DeepSeekConfig{}
	}
	return newChatCompletionService(deepSeekProviderName, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, cfg.MaxRetries, log)
}

func NewOpenAIService(cfg *config.OpenAIConfig, log *zap.Logger) *ChatCompletionService {
	if cfg == nil {
		cfg = &config.OpenAIConfig{}
	}
	return newChatCompletionService(openAIProviderName, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout, cfg.MaxRetries, log)
}

func newChatCompletionService(name, baseURL, apiKey, model string, timeout time.Duration, retries int, log *zap.Logger) *ChatCompletionService {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	apiKey = strings.TrimSpace(apiKey)

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		AddRetryCondition(retryableChatResponse)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	s := &ChatCompletionService{
		name:   name,
		model:  model,
		apiKey: apiKey,
		client: client,
		logger: logger.WithCommonFields(log, name, model),
	}
	if apiKey == "" {
		s.logger.Info("API key not set, provider disabled")
	}
	return s
}

func (s *ChatCompletionService) Name() string { return s.name }

func (s *ChatCompletionService) Model() string { return s.model }

func (s *ChatCompletionService) Available() bool {
	return s != nil && s.apiKey != ""
}

func (s *ChatCompletionService) Attempt(ctx context.Context, prompt string) AttemptResult {
	if !s.Available() {
		return failed(s.name, ErrProviderUnavailable)
	}

	s.logger.Debug("chat completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, maxLogLength)),
	)

	text, err := s.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("chat completion attempt failed", zap.Error(err))
		return failed(s.name, err)
	}

	s.logger.Debug("chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", logger.TruncateForLog(text, maxLogLength)),
	)
	return answered(s.name, text)
}

// Complete sends prompt as a single user message and returns the first choice.
func (s *ChatCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", s.name, err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return "", fmt.Errorf("http %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		return "", errors.New("no choices in response")
	}
	text := strings.TrimSpace(content.String())
	if text == "" {
		return "", fmt.Errorf("%s returned empty response", s.name)
	}
	return text, nil
}

func retryableChatResponse(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
