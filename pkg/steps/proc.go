package steps

import (
	"context"
	"io"

	"github.com/systemstart/runbook/pkg/output"
)

// procAction is the rendered invocation shared by the process-spawning
// operations: program argv, working directory, merged environment, and the
// display line for the header.
type procAction struct {
	kind string
	line string
	argv []string
	dir  string
	env  []string // nil means inherit the parent environment
}

func (a *procAction) Kind() string { return a.kind }

func (a *procAction) Line() string { return a.line }

func (a *procAction) Preview(io.Writer) {}

func (a *procAction) Execute(ctx context.Context, sc Context) error {
	return output.Run(ctx, a.argv, a.dir, a.env, a.kind, sc.Stdout, sc.Stderr)
}
