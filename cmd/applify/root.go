package main

import (
	"context"
	"fmt"
	"log"

	"github.com/fadilmartias/applify/internal/app"
	"github.com/fadilmartias/applify/internal/config"
	applog "github.com/fadilmartias/applify/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "applify"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "applify generates German CVs and cover letters with an LLM fallback chain",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (yaml, toml or json) merged under environment variables")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

func initConfig() {
	env := config.Env()
	if err := env.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := env.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		log.Fatalf("binding json flag: %v", err)
	}

	if cfgFile == "" {
		return
	}
	// We can't proceed if the config file parsed with error.
	if err := config.UseFile(cfgFile); err != nil {
		log.Fatalf("reading config file %s: %v", cfgFile, err)
	}
}

// newLogger writes to stderr so stdout carries only command output.
func newLogger() (*zap.Logger, error) {
	env := config.Env()
	logger, err := applog.New(env.GetBool("json"), env.GetBool("debug"), "stderr")
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return logger, nil
}

func newContainer(ctx context.Context) (*app.Container, *zap.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	container, err := app.NewContainer(ctx, logger)
	if err != nil {
		return nil, nil, err
	}
	return container, logger, nil
}
