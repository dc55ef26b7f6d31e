package config

import (
	"log"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string
	Debug   bool
}

// IsProduction reports whether diagnostics such as stack traces must be hidden.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = readAppConfig(Env())
	})
	return appConfig
}

func readAppConfig(v *viper.Viper) *AppConfig {
	env := strings.ToLower(strings.TrimSpace(v.GetString("app_env")))
	switch env {
	case "prod":
		env = "production"
	case "":
		env = "development"
		log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
	}

	port := strings.TrimSpace(v.GetString("app_port"))
	if port != "" && !strings.Contains(port, ":") {
		port = ":" + port
	}

	return &AppConfig{
		Name:    v.GetString("app_name"),
		Env:     env,
		Port:    port,
		BaseURL: v.GetString("app_url"),
		Debug:   v.GetBool("debug"),
	}
}
