package steps

import (
	"context"
	"io"

	"github.com/systemstart/runbook/pkg/render"
)

// Context carries the per-step runtime state an operation needs to render
// and execute itself.
type Context struct {
	Renderer *render.Renderer
	Vars     *render.Context
	StepEnv  map[string]string // step-level env overrides, values are templates
	Stdout   io.Writer
	Stderr   io.Writer
}

// Action is a fully rendered invocation, ready to preview or perform. The
// same Action backs dry-run and real execution, so what a preview shows is
// exactly what a run would do.
type Action interface {
	Kind() string
	// Line is the rendered command or action description for the step header.
	Line() string
	// Preview writes dry-run detail beyond the header, if any.
	Preview(w io.Writer)
	Execute(ctx context.Context, sc Context) error
}

// Op renders an operation spec into an Action.
type Op interface {
	Kind() string
	Render(sc Context) (Action, error)
}
