package push

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"eventradar/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

type templateRenderer struct{}

// NewTemplateRenderer returns a NotificationRenderer backed by the embedded templates folder.
func NewTemplateRenderer() domain.NotificationRenderer {
	return &templateRenderer{}
}

// Render executes <name>_title.txt and <name>_body.txt with data.
func (r *templateRenderer) Render(templateName string, data any) (title, body string, err error) {
	title, err = r.renderFile(templateName+"_title.txt", data)
	if err != nil {
		return "", "", fmt.Errorf("render title: %w", err)
	}
	body, err = r.renderFile(templateName+"_body.txt", data)
	if err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return title, body, nil
}

func (r *templateRenderer) renderFile(name string, data any) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	t, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
