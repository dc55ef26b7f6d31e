package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fadilmartias/applify/internal/domain/fiber/handler"
	"github.com/fadilmartias/applify/internal/dto"
	"github.com/fadilmartias/applify/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate CV, cover letter and document notes for a candidate file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidatePath, _ := cmd.Flags().GetString("candidate")
		outDir, _ := cmd.Flags().GetString("out")
		wantPDF, _ := cmd.Flags().GetBool("pdf")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runGenerate(ctx, cmd.OutOrStdout(), candidatePath, outDir, wantPDF)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("candidate", "c", "", "candidate profile as JSON")
	generateCmd.Flags().StringP("out", "o", "", "directory to write the documents to. Default prints JSON to stdout.")
	generateCmd.Flags().Bool("pdf", false, "also produce PDF and DOCX files")
	_ = generateCmd.MarkFlagRequired("candidate")
}

func runGenerate(ctx context.Context, stdout io.Writer, candidatePath, outDir string, wantPDF bool) error {
	candidate, err := readCandidate(candidatePath)
	if err != nil {
		return err
	}
	if wantPDF {
		candidate.WantPDF = true
	}

	container, logger, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := container.Generation.Generate(ctx, candidate)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		return err
	}

	if outDir == "" {
		return printJSON(stdout, result)
	}

	written, err := writeResult(outDir, result)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(stdout, path)
	}
	return nil
}

func readCandidate(path string) (model.CandidateRecord, error) {
	var candidate model.CandidateRecord

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return candidate, fmt.Errorf("reading candidate file: %w", err)
	}
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return candidate, fmt.Errorf("decoding candidate file: %w", err)
	}
	if err := handler.NewValidator().Struct(candidate); err != nil {
		return candidate, fmt.Errorf("invalid candidate: %w", err)
	}
	return candidate, nil
}

// writeResult stores every non-empty document in dir and returns the paths written.
func writeResult(dir string, result *dto.GenerationResultDTO) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		name    string
		content []byte
	}{
		{name: "lebenslauf.txt", content: []byte(result.CVText)},
		{name: "anschreiben.txt", content: []byte(result.CoverLetterText)},
		{name: "unterlagen.txt", content: []byte(result.UnterlagenInfo)},
		{name: "lebenslauf_einfach.txt", content: []byte(result.CVSimple)},
		{name: "anschreiben_einfach.txt", content: []byte(result.CoverLetterSimple)},
	}

	for _, bin := range []struct {
		name    string
		encoded string
	}{
		{name: "bewerbung.pdf", encoded: result.PDFBase64},
		{name: "bewerbung.docx", encoded: result.DOCXBase64},
	} {
		if bin.encoded == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(bin.encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", bin.name, err)
		}
		files = append(files, struct {
			name    string
			content []byte
		}{name: bin.name, content: decoded})
	}

	var written []string
	for _, f := range files {
		if len(f.content) == 0 {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.content, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
