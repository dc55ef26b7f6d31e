package config

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	env     *viper.Viper
	envOnce sync.Once
)

// Env returns the process-wide configuration source. Environment variables
// win over the optional file named by APP_CONFIG_FILE, which wins over defaults.
func Env() *viper.Viper {
	envOnce.Do(func() {
		env = newEnv()
		if file := strings.TrimSpace(env.GetString("app_config_file")); file != "" {
			env.SetConfigFile(file)
			if err := env.ReadInConfig(); err != nil {
				log.Printf("Warning: could not read config file %s: %v", file, err)
			}
		}
	})
	return env
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("app_name", "Applify")
	v.SetDefault("app_port", ":8000")

	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("deepseek_base_url", "https://api.deepseek.com")
	v.SetDefault("deepseek_model", "deepseek-chat")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-4o-mini")

	v.SetDefault("llm_timeout_seconds", 120)
	v.SetDefault("llm_max_retries", 2)
	return v
}

func llmTimeout(v *viper.Viper) time.Duration {
	seconds := v.GetInt("llm_timeout_seconds")
	if seconds <= 0 {
		seconds = 120
	}
	return time.Duration(seconds) * time.Second
}

func llmMaxRetries(v *viper.Viper) int {
	retries := v.GetInt("llm_max_retries")
	if retries < 0 {
		return 0
	}
	return retries
}

// UseFile merges a config file into the shared configuration. It must run
// before the Load* functions are first called.
func UseFile(path string) error {
	v := Env()
	v.SetConfigFile(path)
	return v.MergeInConfig()
}
