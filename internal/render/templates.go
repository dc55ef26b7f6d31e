package render

import (
	"bytes"
	"embed"
	"fmt"
	"reflect"
	"strings"
	"text/template"
)

const (
	ResumeTemplate      = "german_resume"
	CoverLetterTemplate = "german_cover_letter"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateRenderer renders a named template against model-produced data.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
}

// Templates holds the embedded German document templates.
type Templates struct {
	set *template.Template
}

var _ TemplateRenderer = (*Templates)(nil)

func NewTemplates() (*Templates, error) {
	set, err := template.New("documents").
		Funcs(template.FuncMap{
			"join":    joinItems,
			"default": defaultValue,
		}).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

func (t *Templates) Render(name string, data map[string]any) (string, error) {
	tmpl := t.set.Lookup(name + ".tmpl")
	if tmpl == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// joinItems joins a JSON array (or a plain string slice) with sep, skipping
// blank entries.
func joinItems(sep string, items any) string {
	var parts []string
	switch list := items.(type) {
	case nil:
		return ""
	case string:
		return list
	case []string:
		parts = list
	case []any:
		parts = make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
	default:
		return fmt.Sprint(items)
	}

	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func defaultValue(fallback any, value any) any {
	if isEmpty(value) {
		return fallback
	}
	return value
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
