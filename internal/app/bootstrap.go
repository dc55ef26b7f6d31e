// Package app wires configuration, providers and the generation pipeline.
package app

import (
	"context"
	"fmt"

	"github.com/fadilmartias/applify/internal/config"
	"github.com/fadilmartias/applify/internal/render"
	"github.com/fadilmartias/applify/internal/service"
	"github.com/fadilmartias/applify/internal/usecase"
	"go.uber.org/zap"
)

// Container holds the process-wide components built once at start.
type Container struct {
	Fallback   *service.FallbackService
	Generation *usecase.GenerationUsecase
}

// Providers returns the provider chain in fallback order: Gemini, DeepSeek, OpenAI.
func Providers(ctx context.Context, log *zap.Logger) ([]service.Provider, error) {
	gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("init gemini: %w", err)
	}

	return []service.Provider{
		gemini,
		service.NewDeepSeekService(config.LoadDeepSeekConfig(), log),
		service.NewOpenAIService(config.LoadOpenAIConfig(), log),
	}, nil
}

func NewContainer(ctx context.Context, log *zap.Logger) (*Container, error) {
	providers, err := Providers(ctx, log)
	if err != nil {
		return nil, err
	}
	return Build(log, providers...)
}

// Build assembles the pipeline around an explicit provider chain.
func Build(log *zap.Logger, providers ...service.Provider) (*Container, error) {
	templates, err := render.NewTemplates()
	if err != nil {
		return nil, err
	}

	fallback := service.NewFallbackService(log, providers...)
	available := 0
	for _, p := range fallback.Providers() {
		if p.Available {
			available++
		}
	}
	if available == 0 && log != nil {
		log.Warn("no LLM provider has credentials, generation requests will fail")
	}

	generation := usecase.NewGenerationUsecase(
		fallback,
		render.NewAssembler(templates, log),
		render.PDFConverter{},
		render.DOCXConverter{},
		log,
	)
	return &Container{Fallback: fallback, Generation: generation}, nil
}
