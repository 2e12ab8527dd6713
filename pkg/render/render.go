package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Error reports a template that failed to parse or referenced an undefined
// variable. Rendering never returns a partially substituted string.
type Error struct {
	Template string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rendering %q: %v", e.Template, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Renderer resolves template strings against a Context. It is stateless and
// safe for concurrent use.
type Renderer struct {
	funcs template.FuncMap
}

// New creates a renderer with the sprig function map.
func New() *Renderer {
	return &Renderer{funcs: sprig.FuncMap()}
}

// Render substitutes all placeholders in s. An undefined variable or
// malformed placeholder syntax yields an *Error.
func (r *Renderer) Render(s string, ctx *Context) (string, error) {
	tmpl, err := template.New("inline").Funcs(r.funcs).Option("missingkey=error").Parse(s)
	if err != nil {
		return "", &Error{Template: s, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx.data); err != nil {
		return "", &Error{Template: s, Err: err}
	}
	return buf.String(), nil
}

// RenderMap renders every value of a string map, preserving keys. Errors are
// attributed to the offending key.
func (r *Renderer) RenderMap(m map[string]string, ctx *Context) (map[string]string, error) {
	out := make(map[string]string, len(m))
	for k, v := range m {
		rendered, err := r.Render(v, ctx)
		if err != nil {
			return nil, fmt.Errorf("value of %q: %w", k, err)
		}
		out[k] = rendered
	}
	return out, nil
}
