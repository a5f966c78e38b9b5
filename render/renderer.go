package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/automate-formation/orchestrator/domain"
)

// ErrUnsupportedType is returned for a document type outside the catalog.
var ErrUnsupportedType = errors.New("unsupported document type")

// MissingDataError reports a required context key that is absent or empty.
type MissingDataError struct {
	Key string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing data: %s", e.Key)
}

// ContentType is the MIME type of rendered artifacts.
const ContentType = "text/html; charset=utf-8"

// Renderer produces a binary artifact for a document type and a field
// context.
type Renderer interface {
	Render(docType domain.DocumentType, c Context) ([]byte, error)
}

// docTemplate pairs a parsed template with the context keys it cannot do
// without.
type docTemplate struct {
	tmpl     *template.Template
	required []string
}

// TemplateRenderer renders the document catalog from HTML templates, one
// per document type, dispatched by an enum-indexed table.
type TemplateRenderer struct {
	templates map[domain.DocumentType]docTemplate
}

// NewTemplateRenderer parses the built-in template catalog.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{templates: make(map[domain.DocumentType]docTemplate)}
	for docType, def := range templateCatalog {
		tmpl, err := template.New(string(docType)).Parse(documentSkeleton + def.body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", docType, err)
		}
		r.templates[docType] = docTemplate{tmpl: tmpl, required: def.required}
	}
	return r, nil
}

// Render produces the artifact for one document type. It fails with
// ErrUnsupportedType for an unknown type and with a MissingDataError when a
// required context key is absent or empty.
func (r *TemplateRenderer) Render(docType domain.DocumentType, c Context) ([]byte, error) {
	def, ok := r.templates[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, docType)
	}
	for _, key := range def.required {
		if c[key] == "" {
			return nil, &MissingDataError{Key: key}
		}
	}
	var buf bytes.Buffer
	if err := def.tmpl.Execute(&buf, c); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", docType, err)
	}
	return buf.Bytes(), nil
}
