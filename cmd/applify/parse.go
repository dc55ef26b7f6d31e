package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fadilmartias/applify/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract a structured profile from a resume (PDF or plain text)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runParse(ctx, cmd.OutOrStdout(), path)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("file", "f", "", "resume file (.pdf or .txt)")
	_ = parseCmd.MarkFlagRequired("file")
}

func runParse(ctx context.Context, stdout io.Writer, path string) error {
	container, logger, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	text, err := readResume(ctx, path, logger)
	if err != nil {
		return err
	}

	set, err := container.Generation.ParseResume(ctx, text)
	if err != nil {
		logger.Error("parsing resume failed", zap.Error(err))
		return err
	}
	return printJSON(stdout, set)
}

func readResume(ctx context.Context, path string, logger *zap.Logger) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("reading resume: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return util.ExtractPDFText(ctx, data, logger)
	}
	return string(data), nil
}
