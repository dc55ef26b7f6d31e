package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/fadilmartias/applify/internal/model"
	"github.com/fadilmartias/applify/internal/util"
	"github.com/go-playground/validator/v10"
)

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateCandidate returns nil when the record is acceptable. Errors are keyed
// by JSON path, e.g. "experience[0].company".
func (h *GenerateHandler) validateCandidate(candidate model.CandidateRecord) *util.FormError {
	err := h.validate.Struct(candidate)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return util.NewFormError(err.Error(), nil)
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		path := fe.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}
		fields[path] = fe.Tag()
	}
	return util.NewFormError("validation failed", fields)
}
