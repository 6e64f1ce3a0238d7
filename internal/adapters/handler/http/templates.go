package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageTemplates struct {
	index   *template.Template
	detail  *template.Template
	results *template.Template
	login   *template.Template
}

// Parsed once at startup; every handler shares the same set.
var pages = newPageTemplates()

func newPageTemplates() *pageTemplates {
	return &pageTemplates{
		index:   template.Must(template.ParseFS(templateFS, "templates/index.html")),
		detail:  template.Must(template.ParseFS(templateFS, "templates/detail.html")),
		results: template.Must(template.ParseFS(templateFS, "templates/results.html")),
		login:   template.Must(template.ParseFS(templateFS, "templates/login.html")),
	}
}

func (t *pageTemplates) render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("failed to render template", "template", tmpl.Name(), "error", err)
	}
}
