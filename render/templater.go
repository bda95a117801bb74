package render

import (
	"fmt"
	"maps"

	pongo2 "github.com/flosch/pongo2/v6"
)

// Templater provides strict Jinja2-style (pongo2) rendering of an
// assembled document. Unlike the core substitution pass, which leaves
// unknown tokens verbatim and never fails, this fails fast on template
// errors. Use it when the output is itself a template to be finalized.
type Templater struct{}

// NewTemplater creates a new Templater.
func NewTemplater() *Templater {
	return &Templater{}
}

// Render renders a template string with the provided data using pongo2.
func (t *Templater) Render(tmpl string, data map[string]any) (string, error) {
	if data == nil {
		return "", fmt.Errorf("template data is nil")
	}
	pl, err := pongo2.FromString(tmpl)
	if err != nil {
		return "", err
	}
	return pl.Execute(flattenContext(data))
}

// RegisterFilters allows registering custom pongo2 filters.
func (t *Templater) RegisterFilters(filters map[string]pongo2.FilterFunction) {
	for name, fn := range filters {
		_ = pongo2.RegisterFilter(name, fn)
	}
}

// StrictRender applies strict templating to the given string.
func StrictRender(tmpl string, data map[string]any) (string, error) {
	return NewTemplater().Render(tmpl, data)
}

// flattenContext converts the map for pongo2 compatibility.
func flattenContext(data map[string]any) pongo2.Context {
	converted := make(pongo2.Context, len(data))
	maps.Copy(converted, data)
	return converted
}
