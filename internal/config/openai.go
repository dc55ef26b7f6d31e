package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

var (
	openAIConfig *OpenAIConfig
	openAIOnce   sync.Once
)

func LoadOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		openAIConfig = readOpenAIConfig(Env())
	})
	return openAIConfig
}

func readOpenAIConfig(v *viper.Viper) *OpenAIConfig {
	return &OpenAIConfig{
		APIKey:     strings.TrimSpace(v.GetString("openai_api_key")),
		BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("openai_base_url")), "/"),
		Model:      strings.TrimSpace(v.GetString("openai_model")),
		MaxRetries: llmMaxRetries(v),
		Timeout:    llmTimeout(v),
	}
}
