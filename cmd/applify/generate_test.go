package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/fadilmartias/applify/internal/dto"
	"github.com/fadilmartias/applify/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := &dto.GenerationResultDTO{
		AssembledDocuments: model.AssembledDocuments{
			CVText:          "Lebenslauf",
			CoverLetterText: "Anschreiben",
			UnterlagenInfo:  "Unterlagen",
		},
		PDFBase64: base64.StdEncoding.EncodeToString([]byte("%PDF-1.3")),
	}

	written, err := writeResult(dir, result)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "lebenslauf.txt"),
		filepath.Join(dir, "anschreiben.txt"),
		filepath.Join(dir, "unterlagen.txt"),
		filepath.Join(dir, "bewerbung.pdf"),
	}, written)

	pdf, err := os.ReadFile(filepath.Join(dir, "bewerbung.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(pdf))

	_, err = os.Stat(filepath.Join(dir, "lebenslauf_einfach.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteResultRejectsBadBase64(t *testing.T) {
	_, err := writeResult(t.TempDir(), &dto.GenerationResultDTO{DOCXBase64: "!!!"})
	assert.Error(t, err)
}

func TestReadCandidate(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"name":"Anna Muster","email":"anna@example.de","job_description":"Kundenservice"}`), 0o600))

	candidate, err := readCandidate(valid)
	require.NoError(t, err)
	assert.Equal(t, "Anna Muster", candidate.Name)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"name":"Anna Muster","email":"kaputt"}`), 0o600))

	_, err = readCandidate(invalid)
	assert.ErrorContains(t, err, "invalid candidate")

	_, err = readCandidate(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestReadResumeText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Max Mustermann"), 0o600))

	text, err := readResume(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Max Mustermann", text)
}

func TestPrintJSONKeepsUmlauts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]string{"cv_text": "Grüße <3"}))
	assert.Contains(t, buf.String(), `"cv_text": "Grüße <3"`)
}

func TestNewLoggerKeepsStdoutClean(t *testing.T) {
	dir := t.TempDir()
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	stderr, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdout, stderr
	t.Cleanup(func() { os.Stdout, os.Stderr = origStdout, origStderr })

	logger, err := newLogger()
	require.NoError(t, err)
	logger.Info("documents generated")
	_ = logger.Sync()

	out, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	assert.Empty(t, out)

	logged, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Contains(t, string(logged), "documents generated")
}
