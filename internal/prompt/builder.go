// Package prompt builds the text sent to the language model.
package prompt

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/applify/internal/model"
)

const (
	candidateDelimiter = "\n\nUSER_CANDIDATE_DATA:\n"
	resumeDelimiter    = "\n\nRESUME_TEXT:\n"
)

var (
	//go:embed instructions/generate.txt
	generateInstructions string

	//go:embed instructions/parse_resume.txt
	parseResumeInstructions string
)

// GenerateInstructions returns the fixed instruction block for document generation.
func GenerateInstructions() string {
	return strings.TrimSpace(generateInstructions)
}

// Build appends the candidate, wrapped as {"candidate": ...}, to instructions.
// The output is byte-identical for equal inputs.
func Build(instructions string, candidate model.CandidateRecord) (string, error) {
	payload, err := encodeCandidate(candidate.Normalized())
	if err != nil {
		return "", fmt.Errorf("encode candidate: %w", err)
	}
	return instructions + candidateDelimiter + payload, nil
}

// BuildParseResume builds the prompt that asks the model to structure a raw resume.
func BuildParseResume(resumeText string) string {
	return strings.TrimSpace(parseResumeInstructions) + resumeDelimiter + strings.TrimSpace(resumeText)
}

func encodeCandidate(candidate model.CandidateRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	wrapper := struct {
		Candidate model.CandidateRecord `json:"candidate"`
	}{Candidate: candidate}
	if err := enc.Encode(wrapper); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
