// Package report renders printable clinic documents as self-contained HTML.
// Rendering failures collapse into ErrRenderFailed; template internals are
// never surfaced to callers.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var ErrRenderFailed = errors.New("rendering failed")

const (
	TemplatePatientRoster     = "patient_roster.html"
	TemplateAppointmentLog    = "appointment_log.html"
	TemplateAppointmentTicket = "appointment_ticket.html"
	TemplateSpecialtyList     = "specialty_list.html"
	TemplateClinicalHistory   = "clinical_history.html"
)

type Renderer interface {
	Render(name string, data interface{}) ([]byte, error)
}

type htmlRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() (Renderer, error) {
	templates, err := template.New("report").Funcs(template.FuncMap{
		"date":     func(t time.Time) string { return t.Format("2006-01-02") },
		"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &htmlRenderer{templates: templates}, nil
}

func (r *htmlRenderer) Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, ErrRenderFailed
	}
	return buf.Bytes(), nil
}
