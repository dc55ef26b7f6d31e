package util

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/fadilmartias/applify/internal/logger"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

const ocrLanguages = "deu+eng"

var ErrNoText = errors.New("no text extracted from PDF")

// ExtractPDFText membaca text layer tiap halaman PDF. Halaman tanpa teks
// (hasil scan) dikirim ke Tesseract kalau tersedia.
func ExtractPDFText(ctx context.Context, data []byte, log *zap.Logger) (string, error) {
	log = logger.OrNop(log)
	if len(data) == 0 {
		return "", fmt.Errorf("empty PDF: %w", ErrNoText)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	ocrAvailable := checkTesseract(ctx) == nil
	log.Debug("extracting pdf text", zap.Int("pages", doc.NumPage()), zap.Bool("ocr_available", ocrAvailable))

	var fullText strings.Builder
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
			log.Warn("pdf text extraction failed", zap.Int("page", n+1), zap.Error(err))
		}
		pageText = strings.TrimSpace(pageText)

		if pageText == "" && ocrAvailable {
			pageText, err = ocrPage(ctx, doc, n)
			if err != nil {
				lastErr = err
				log.Warn("ocr failed", zap.Int("page", n+1), zap.Error(err))
				continue
			}
		}

		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("%w: %w", ErrNoText, lastErr)
		}
		return "", ErrNoText
	}

	log.Debug("pdf text extracted", zap.Int("length", len(result)))
	return result, nil
}

func ocrPage(ctx context.Context, doc *fitz.Document, n int) (string, error) {
	img, err := doc.Image(n)
	if err != nil {
		return "", fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
	}

	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("page %d: failed to create temp file: %w", n+1, err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := savePNG(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("page %d: failed to save PNG: %w", n+1, err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("page %d: failed to close temp file: %w", n+1, err)
	}

	out, err := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", ocrLanguages).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("page %d: tesseract error: %w, output: %s", n+1, err, logger.TruncateForLog(string(out), 200))
	}
	return strings.TrimSpace(string(out)), nil
}

// checkTesseract memverifikasi apakah tesseract terinstall dan bisa dijalankan
func checkTesseract(ctx context.Context) error {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return fmt.Errorf("tesseract not found: %w", err)
	}
	if out, err := exec.CommandContext(ctx, "tesseract", "-v").CombinedOutput(); err != nil {
		return fmt.Errorf("tesseract not executable: %w\nOutput: %s", err, string(out))
	}
	return nil
}

func savePNG(f *os.File, img image.Image) error {
	if img == nil {
		return fmt.Errorf("invalid image: nil")
	}
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
