package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type GeminiConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = readGeminiConfig(Env())
	})
	return geminiConfig
}

func readGeminiConfig(v *viper.Viper) *GeminiConfig {
	return &GeminiConfig{
		APIKey:     strings.TrimSpace(v.GetString("gemini_api_key")),
		Model:      strings.TrimSpace(v.GetString("gemini_model")),
		MaxRetries: llmMaxRetries(v),
		Timeout:    llmTimeout(v),
	}
}
