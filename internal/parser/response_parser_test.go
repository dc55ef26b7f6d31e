package parser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fadilmartias/applify/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentSetWholeText(t *testing.T) {
	set, err := ExtractDocumentSet(`  {"cv_text":"Lebenslauf","cover_letter_text":"Anschreiben"}  `)
	require.NoError(t, err)
	assert.Equal(t, model.DocumentSet{
		"cv_text":           "Lebenslauf",
		"cover_letter_text": "Anschreiben",
	}, set)
}

func TestExtractDocumentSetRecoversFencedPayload(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"cv_text\":\"X\"}\n```\nThanks!"

	set, err := ExtractDocumentSet(raw)
	require.NoError(t, err)
	assert.Equal(t, model.DocumentSet{"cv_text": "X"}, set)
}

func TestExtractDocumentSetRoundTrip(t *testing.T) {
	original := map[string]any{
		"cv_text":   "Lebenslauf – Anna Müller\n\"Zitat\" {Klammern}",
		"score":     float64(0.75),
		"count":     float64(12),
		"negative":  float64(-3),
		"published": true,
		"draft":     false,
		"tags":      []any{"Go", float64(1), true, map[string]any{"nested": "yes"}},
		"cv_data": map[string]any{
			"personal": map[string]any{"name": "Anna Muster", "email": "anna@example.com"},
			"skills":   []any{},
		},
		"empty": map[string]any{},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	set, err := ExtractDocumentSet(string(encoded))
	require.NoError(t, err)

	reencoded, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(reencoded))
	assert.Equal(t, json.Number("12"), set["count"])
	assert.Equal(t, map[string]any{}, set["empty"])
}

func TestExtractDocumentSetKeepsLargeIntegers(t *testing.T) {
	raw := `{"id":9007199254740993,"ids":[12345678901234567890]}`

	set, err := ExtractDocumentSet(raw)
	require.NoError(t, err)

	assert.Equal(t, "9007199254740993", set.Text("id"))
	reencoded, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(reencoded))
	assert.Contains(t, string(reencoded), "12345678901234567890")
}

func TestExtractDocumentSetFailures(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "no braces", raw: "Entschuldigung, ich kann das nicht.", reason: "no JSON object found"},
		{name: "empty", raw: "", reason: "no JSON object found"},
		{name: "bare array", raw: `["cv_text", "x"]`, reason: "answer is not a JSON object"},
		{name: "bare string", raw: `"just text"`, reason: "answer is not a JSON object"},
		{name: "array wrapping object", raw: `[{"cv_text":"X"}]`, reason: "answer is not a JSON object"},
		{name: "number", raw: `42`, reason: "answer is not a JSON object"},
		{name: "null", raw: `null`, reason: "answer is not a JSON object"},
		{name: "reversed braces", raw: "} oops {", reason: "no JSON object found"},
		{name: "broken payload", raw: "Result: {\"cv_text\": \"x\",} done", reason: "embedded payload is not valid JSON"},
		{name: "two objects", raw: `{"a":1} and {"b":2}`, reason: "embedded payload is not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ExtractDocumentSet(tt.raw)
			require.Error(t, err)
			assert.Nil(t, set)
			assert.True(t, errors.Is(err, ErrUnparsableResponse))

			var unparsable *UnparsableResponseError
			require.True(t, errors.As(err, &unparsable))
			assert.Equal(t, tt.raw, unparsable.Raw)
			assert.Equal(t, tt.reason, unparsable.Reason)
		})
	}
}
