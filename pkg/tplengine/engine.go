package tplengine

import (
	"bytes"
	"fmt"
	"maps"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders composite report documents. It is the outer layer on top of
// the plain-text artifacts: the engine packages keep their textual
// placeholder substitution, and this stitches the finished artifacts into
// one document.
type Engine struct {
	named   map[string]*template.Template
	globals map[string]any
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		named:   make(map[string]*template.Template),
		globals: make(map[string]any),
	}
}

// WithGlobalValue registers a value available to every render.
func (e *Engine) WithGlobalValue(key string, value any) *Engine {
	e.globals[key] = value
	return e
}

// HasTemplate reports whether the string contains template markers.
func HasTemplate(s string) bool {
	return strings.Contains(s, "{{")
}

// AddTemplate parses and stores a named template.
func (e *Engine) AddTemplate(name, text string) error {
	tmpl, err := parse(name, text)
	if err != nil {
		return err
	}
	e.named[name] = tmpl
	return nil
}

// Render renders a stored template by name.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	tmpl, ok := e.named[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	return e.execute(tmpl, data)
}

// RenderString renders a template string. Text without template markers
// passes through unchanged.
func (e *Engine) RenderString(text string, data map[string]any) (string, error) {
	if !HasTemplate(text) {
		return text, nil
	}
	tmpl, err := parse("inline", text)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data)
}

// Missing keys fail the render rather than printing "<no value>".
func parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

func (e *Engine) execute(tmpl *template.Template, data map[string]any) (string, error) {
	merged := make(map[string]any, len(data)+len(e.globals))
	maps.Copy(merged, data)
	maps.Copy(merged, e.globals)
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, merged); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
