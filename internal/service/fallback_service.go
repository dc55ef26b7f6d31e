package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/applify/internal/logger"
	"go.uber.org/zap"
)

var (
	ErrNoProvidersConfigured = errors.New("no LLM providers configured")
	ErrAllProvidersExhausted = errors.New("all LLM providers failed")
)

// ExhaustedError lists every attempt made, in fallback order.
type ExhaustedError struct {
	Failures []AttemptResult
}

func (e *ExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return ErrAllProvidersExhausted.Error()
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Provider, f.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrAllProvidersExhausted, strings.Join(parts, "; "))
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllProvidersExhausted
}

// ProviderStatus is the public view of one configured provider.
type ProviderStatus struct {
	Name      string `json:"name"`
	Model     string `json:"model"`
	Available bool   `json:"available"`
}

// FallbackService tries providers in priority order and returns the first
// non-empty answer. It keeps no state between runs.
type FallbackService struct {
	providers []Provider
	logger    *zap.Logger
}

func NewFallbackService(log *zap.Logger, providers ...Provider) *FallbackService {
	kept := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &FallbackService{providers: kept, logger: logger.OrNop(log)}
}

func (s *FallbackService) Providers() []ProviderStatus {
	out := make([]ProviderStatus, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, ProviderStatus{Name: p.Name(), Model: p.Model(), Available: p.Available()})
	}
	return out
}

// Run asks each available provider in turn. Providers without credentials
// are skipped without an attempt. Later providers are never contacted once
// one has answered.
func (s *FallbackService) Run(ctx context.Context, prompt string) (string, error) {
	var failures []AttemptResult
	attempted := 0

	for i, p := range s.providers {
		if !p.Available() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("fallback aborted before %s: %w", p.Name(), err)
		}

		attempted++
		result := p.Attempt(ctx, prompt)
		if result.OK() {
			if i > 0 || len(failures) > 0 {
				s.logger.Info("fallback provider answered",
					append(logger.CommonFields(p.Name(), p.Model()), zap.Int("failed_before", len(failures)))...,
				)
			}
			return result.Text, nil
		}

		if result.Provider == "" {
			result.Provider = p.Name()
		}
		if strings.TrimSpace(result.Reason) == "" {
			result.Reason = "no answer"
		}
		failures = append(failures, result)
		s.logger.Warn("provider failed, trying next",
			append(logger.CommonFields(p.Name(), p.Model()), zap.String("reason", result.Reason))...,
		)
	}

	if attempted == 0 {
		return "", ErrNoProvidersConfigured
	}
	s.logger.Error("all providers failed", zap.Int("attempts", attempted))
	return "", &ExhaustedError{Failures: failures}
}
