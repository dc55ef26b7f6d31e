package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/applify/internal/dto"
	"github.com/fadilmartias/applify/internal/logger"
	"github.com/fadilmartias/applify/internal/model"
	"github.com/fadilmartias/applify/internal/parser"
	"github.com/fadilmartias/applify/internal/prompt"
	"github.com/fadilmartias/applify/internal/render"
	"github.com/fadilmartias/applify/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyResumeText = errors.New("resume text is empty")

type completionRunner interface {
	Run(ctx context.Context, prompt string) (string, error)
	Providers() []service.ProviderStatus
}

type GenerationUsecase struct {
	runner       completionRunner
	assembler    *render.Assembler
	pdf          render.Converter
	docx         render.Converter
	instructions string
	logger       *zap.Logger
	now          func() time.Time
}

func NewGenerationUsecase(runner completionRunner, assembler *render.Assembler, pdf, docx render.Converter, log *zap.Logger) *GenerationUsecase {
	return &GenerationUsecase{
		runner:       runner,
		assembler:    assembler,
		pdf:          pdf,
		docx:         docx,
		instructions: prompt.GenerateInstructions(),
		logger:       logger.OrNop(log),
		now:          time.Now,
	}
}

// Generate produces the German application documents for one candidate.
// Provider and parse failures are returned; template and file conversion
// failures are not.
func (uc *GenerationUsecase) Generate(ctx context.Context, candidate model.CandidateRecord) (*dto.GenerationResultDTO, error) {
	requestID := uuid.New()
	log := uc.logger.With(zap.String(logger.FieldRequestID, requestID.String()))

	fullPrompt, err := prompt.Build(uc.instructions, candidate)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}
	log.Debug("prompt built", zap.Int("length", len(fullPrompt)))

	raw, err := uc.runner.Run(ctx, fullPrompt)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return nil, err
	}

	set, err := parser.ExtractDocumentSet(raw)
	if err != nil {
		log.Error("model answer is not a JSON object",
			zap.Error(err),
			zap.String("raw_preview", logger.TruncateForLog(raw, 300)),
		)
		return nil, err
	}

	result := &dto.GenerationResultDTO{
		AssembledDocuments: uc.assembler.Assemble(set),
		GeneratedAt:        uc.now().UTC().Format(time.RFC3339),
		RequestID:          requestID,
	}

	if candidate.WantPDF {
		uc.attachFiles(result, candidate.Name, log)
	}

	log.Info("documents generated", zap.Bool("want_pdf", candidate.WantPDF))
	return result, nil
}

func (uc *GenerationUsecase) attachFiles(result *dto.GenerationResultDTO, name string, log *zap.Logger) {
	title := "Lebenslauf - " + strings.TrimSpace(name)
	body := result.CVText + "\n\n" + result.CoverLetterText

	if out, err := convert(uc.pdf, title, body); err != nil {
		log.Warn("pdf conversion failed", zap.Error(err))
		result.PDFError = err.Error()
	} else {
		result.PDFBase64 = base64.StdEncoding.EncodeToString(out)
	}

	if out, err := convert(uc.docx, title, body); err != nil {
		log.Warn("docx conversion failed", zap.Error(err))
		result.DOCXError = err.Error()
	} else {
		result.DOCXBase64 = base64.StdEncoding.EncodeToString(out)
	}
}

func convert(c render.Converter, title, body string) (out []byte, err error) {
	if c == nil {
		return nil, errors.New("converter not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return c.Convert(title, body)
}

// ParseResume asks the providers to structure a raw resume text.
func (uc *GenerationUsecase) ParseResume(ctx context.Context, resumeText string) (model.DocumentSet, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResumeText
	}

	raw, err := uc.runner.Run(ctx, prompt.BuildParseResume(resumeText))
	if err != nil {
		return nil, err
	}
	return parser.ExtractDocumentSet(raw)
}

func (uc *GenerationUsecase) Providers() []service.ProviderStatus {
	return uc.runner.Providers()
}
