package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DeepSeekConfig configures the OpenAI-compatible DeepSeek endpoint.
type DeepSeekConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

var (
	deepSeekConfig *DeepSeekConfig
	deepSeekOnce   sync.Once
)

func LoadDeepSeekConfig() *DeepSeekConfig {
	deepSeekOnce.Do(func() {
		deepSeekConfig = readDeepSeekConfig(Env())
	})
	return deepSeekConfig
}

func readDeepSeekConfig(v *viper.Viper) *DeepSeekConfig {
	return &DeepSeekConfig{
		APIKey:     strings.TrimSpace(v.GetString("deepseek_api_key")),
		BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("deepseek_base_url")), "/"),
		Model:      strings.TrimSpace(v.GetString("deepseek_model")),
		MaxRetries: llmMaxRetries(v),
		Timeout:    llmTimeout(v),
	}
}
