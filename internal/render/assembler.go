package render

import (
	"github.com/fadilmartias/applify/internal/logger"
	"github.com/fadilmartias/applify/internal/model"
	"go.uber.org/zap"
)

// Assembler turns a parsed DocumentSet into final document texts. Structured
// cv_data and cover_letter_data are rendered through the templates and win
// over the flat text fields; a failed render keeps the flat text.
type Assembler struct {
	renderer TemplateRenderer
	logger   *zap.Logger
}

func NewAssembler(renderer TemplateRenderer, log *zap.Logger) *Assembler {
	return &Assembler{renderer: renderer, logger: logger.OrNop(log)}
}

func (a *Assembler) Assemble(set model.DocumentSet) model.AssembledDocuments {
	docs := model.AssembledDocuments{
		CVText:            set.Text(model.KeyCVText),
		CoverLetterText:   set.Text(model.KeyCoverLetterText),
		UnterlagenInfo:    set.Text(model.KeyUnterlagenInfo),
		CVSimple:          set.Text(model.KeyCVSimple),
		CoverLetterSimple: set.Text(model.KeyCoverLetterSimple),
	}

	if data, ok := set.Object(model.KeyCVData); ok {
		if text, ok := a.render(ResumeTemplate, data); ok {
			docs.CVText = text
		}
	}
	if data, ok := set.Object(model.KeyCoverLetterData); ok {
		if text, ok := a.render(CoverLetterTemplate, data); ok {
			docs.CoverLetterText = text
		}
	}
	return docs
}

func (a *Assembler) render(name string, data map[string]any) (string, bool) {
	if a.renderer == nil {
		return "", false
	}
	text, err := a.renderer.Render(name, data)
	if err != nil {
		a.logger.Warn("template rendering failed, keeping flat text",
			zap.String("template", name),
			zap.Error(err),
		)
		return "", false
	}
	return text, true
}
