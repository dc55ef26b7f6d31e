package dto

import (
	"github.com/fadilmartias/applify/internal/model"
	"github.com/google/uuid"
)

// GenerationResultDTO is the response body of one generation request.
// Binary fields are only set when the candidate asked for files.
type GenerationResultDTO struct {
	model.AssembledDocuments
	GeneratedAt string    `json:"generated_at"`
	RequestID   uuid.UUID `json:"request_id"`
	PDFBase64   string    `json:"pdf_base64,omitempty"`
	DOCXBase64  string    `json:"docx_base64,omitempty"`
	PDFError    string    `json:"pdf_error,omitempty"`
	DOCXError   string    `json:"docx_error,omitempty"`
}

type ParseResumeRequestDTO struct {
	Text string `json:"text" form:"text"`
}

type ParseResumeResultDTO struct {
	RequestID uuid.UUID         `json:"request_id"`
	Resume    model.DocumentSet `json:"resume"`
}
