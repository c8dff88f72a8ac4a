package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const welcomeSubject = "Welcome to the Company!"

// Renderer produces the message body for a job.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// RenderWelcome renders the welcome message for an address and returns
// subject and HTML body.
func (r *Renderer) RenderWelcome(address string) (subject, body string, err error) {
	var buf bytes.Buffer
	data := struct {
		Email string
	}{Email: address}

	if err := r.templates.ExecuteTemplate(&buf, "welcome.html.tmpl", data); err != nil {
		return "", "", fmt.Errorf("render welcome template: %w", err)
	}
	return welcomeSubject, buf.String(), nil
}
