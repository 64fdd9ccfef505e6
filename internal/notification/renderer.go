package notification

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders notice subjects and bodies from the embedded templates. Each
// template file defines a "subject" and a "body" block.
type Renderer struct {
	templates map[Kind]*template.Template
}

// NewRenderer parses one template per known kind.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[Kind]*template.Template)}
	for _, kind := range []Kind{KindActivation, KindPasswordReset} {
		tmpl, err := template.New(string(kind)).
			Option("missingkey=error").
			ParseFS(templateFS, "templates/"+string(kind)+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", kind, err)
		}
		r.templates[kind] = tmpl
	}
	return r, nil
}

// Render returns the subject and body for the notice.
func (r *Renderer) Render(notice Notice) (subject, body string, err error) {
	tmpl, ok := r.templates[notice.Kind]
	if !ok {
		return "", "", fmt.Errorf("no template for notice kind %q", notice.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "subject", notice.Context); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := tmpl.ExecuteTemplate(&buf, "body", notice.Context); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}
	return subject, strings.TrimSpace(buf.String()) + "\n", nil
}
