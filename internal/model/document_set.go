package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Keys recognised in a model answer.
const (
	KeyCVText            = "cv_text"
	KeyCoverLetterText   = "cover_letter_text"
	KeyUnterlagenInfo    = "unterlagen_info"
	KeyCVSimple          = "cv_simple"
	KeyCoverLetterSimple = "cover_letter_simple"
	KeyCVData            = "cv_data"
	KeyCoverLetterData   = "cover_letter_data"
)

// DocumentSet is the JSON object a provider answered with, decoded as a whole.
type DocumentSet map[string]any

// Text returns the value under key as text. Missing and null values are empty;
// non-string values are JSON encoded.
func (d DocumentSet) Text(key string) string {
	switch val := d[key].(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

// Object returns the value under key when it is a JSON object.
func (d DocumentSet) Object(key string) (map[string]any, bool) {
	obj, ok := d[key].(map[string]any)
	return obj, ok
}

// AssembledDocuments holds the final texts handed to the transport layer.
type AssembledDocuments struct {
	CVText            string `json:"cv_text"`
	CoverLetterText   string `json:"cover_letter_text"`
	UnterlagenInfo    string `json:"unterlagen_info"`
	CVSimple          string `json:"cv_simple"`
	CoverLetterSimple string `json:"cover_letter_simple"`
}

// CombinedText is the body used for the PDF and DOCX exports.
func (a AssembledDocuments) CombinedText() string {
	return strings.TrimSpace(a.CVText + "\n\n" + a.CoverLetterText)
}
