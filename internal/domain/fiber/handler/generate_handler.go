package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/applify/internal/config"
	"github.com/fadilmartias/applify/internal/dto"
	"github.com/fadilmartias/applify/internal/logger"
	"github.com/fadilmartias/applify/internal/middleware"
	"github.com/fadilmartias/applify/internal/model"
	"github.com/fadilmartias/applify/internal/parser"
	"github.com/fadilmartias/applify/internal/service"
	"github.com/fadilmartias/applify/internal/usecase"
	"github.com/fadilmartias/applify/internal/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResumeFileSize = 5 * 1024 * 1024

type generationService interface {
	Generate(ctx context.Context, candidate model.CandidateRecord) (*dto.GenerationResultDTO, error)
	ParseResume(ctx context.Context, resumeText string) (model.DocumentSet, error)
	Providers() []service.ProviderStatus
}

type GenerateHandler struct {
	uc       generationService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewGenerateHandler(uc generationService, log *zap.Logger) *GenerateHandler {
	return &GenerateHandler{uc: uc, validate: NewValidator(), logger: logger.OrNop(log)}
}

func (h *GenerateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/generate-resume", middleware.RateLimiter(10, time.Minute), h.Generate)
	app.Post("/parse-resume", middleware.RateLimiter(10, time.Minute), h.ParseResume)
	app.Get("/providers", h.Providers)
}

func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	var candidate model.CandidateRecord
	if err := c.BodyParser(&candidate); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	if formErr := h.validateCandidate(candidate); formErr != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, formErr)
	}

	result, err := h.uc.Generate(c.UserContext(), candidate)
	if err != nil {
		return h.generationError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate documents",
		Data:    result,
	})
}

func (h *GenerateHandler) ParseResume(c *fiber.Ctx) error {
	text, reqErr := h.resumeText(c)
	if reqErr != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    reqErr.code,
			Message: reqErr.message,
		}, reqErr.cause)
	}
	if strings.TrimSpace(text) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file or text is required",
		})
	}

	set, err := h.uc.ParseResume(c.UserContext(), text)
	if err != nil {
		return h.generationError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success parse resume",
		Data:    dto.ParseResumeResultDTO{RequestID: uuid.New(), Resume: set},
	})
}

func (h *GenerateHandler) Providers(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get providers",
		Data:    h.uc.Providers(),
	})
}

// requestError carries the status and client message for a rejected upload.
type requestError struct {
	code    int
	message string
	cause   error
}

// resumeText reads either an uploaded "resume" file or a "text" field.
// Nothing is written to the response here.
func (h *GenerateHandler) resumeText(c *fiber.Ctx) (string, *requestError) {
	file, err := c.FormFile("resume")
	if err != nil {
		var req dto.ParseResumeRequestDTO
		if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
			return "", &requestError{code: fiber.StatusBadRequest, message: "invalid request body", cause: err}
		}
		return req.Text, nil
	}

	if file.Size > maxResumeFileSize {
		return "", &requestError{code: fiber.StatusRequestEntityTooLarge, message: "resume file size is too large (max 5MB)"}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".txt" {
		return "", &requestError{code: fiber.StatusUnsupportedMediaType, message: fmt.Sprintf("unsupported resume file type %q", ext)}
	}

	f, err := file.Open()
	if err != nil {
		return "", &requestError{code: fiber.StatusInternalServerError, message: "cannot read resume file", cause: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &requestError{code: fiber.StatusInternalServerError, message: "cannot read resume file", cause: err}
	}

	if ext == ".txt" {
		return string(data), nil
	}

	text, err := util.ExtractPDFText(c.UserContext(), data, h.logger)
	if err != nil {
		return "", &requestError{code: fiber.StatusUnprocessableEntity, message: "failed to extract resume text", cause: err}
	}
	return text, nil
}

func (h *GenerateHandler) generationError(c *fiber.Ctx, err error) error {
	var exhausted *service.ExhaustedError
	var unparsable *parser.UnparsableResponseError

	switch {
	case errors.Is(err, service.ErrNoProvidersConfigured):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "no LLM provider is configured",
		}, err)

	case errors.As(err, &exhausted):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "all LLM providers failed",
			Details: exhausted.Failures,
		}, err)

	case errors.As(err, &unparsable):
		format := util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "failed to parse model output as JSON",
		}
		if !config.LoadAppConfig().IsProduction() {
			format.Details = fiber.Map{"raw_output": unparsable.Raw}
		}
		return util.ErrorResponse(c, format, err)

	case errors.Is(err, usecase.ErrEmptyResumeText):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file or text is required",
		}, err)

	default:
		h.logger.Error("generation request failed", zap.Error(err))
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate documents",
		}, err)
	}
}
