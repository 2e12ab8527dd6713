package run

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/systemstart/runbook/pkg/api"
	"github.com/systemstart/runbook/pkg/render"
	"github.com/systemstart/runbook/pkg/steps"
)

// StepError attributes a failure to the step that caused it.
type StepError struct {
	Index int // 0-based position in the document
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes a document's steps strictly in order, halting on the
// first failure. The environment snapshot and output writers are injected
// so runs are reproducible under test.
type Runner struct {
	Renderer *render.Renderer
	Environ  []string
	DryRun   bool
	Out      io.Writer
	Err      io.Writer
}

// New creates a runner bound to the real process environment and standard
// streams.
func New(dryRun bool) *Runner {
	return &Runner{
		Renderer: render.New(),
		Environ:  os.Environ(),
		DryRun:   dryRun,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}
}

// RunDocument executes every step of doc in order. The first failing step
// stops the run and is returned as a *StepError; steps after it are never
// attempted.
func (r *Runner) RunDocument(ctx context.Context, doc *api.Document) error {
	vars := render.NewContext(doc.Globals, r.Environ)

	for i := range doc.Steps {
		step := &doc.Steps[i]
		if err := r.runStep(ctx, step, i, vars); err != nil {
			return &StepError{Index: i, Name: step.DisplayName(), Err: err}
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step *api.Step, idx int, vars *render.Context) error {
	if step.When != nil && !*step.When {
		slog.Debug("skipping step", "step", idx+1, "name", step.DisplayName())
		return nil
	}

	op, err := steps.New(step)
	if err != nil {
		return err
	}

	sc := steps.Context{
		Renderer: r.Renderer,
		Vars:     vars,
		StepEnv:  step.Env,
		Stdout:   r.Out,
		Stderr:   r.Err,
	}

	action, err := op.Render(sc)
	if err != nil {
		return err
	}

	// The header always precedes the action, in dry-run and real run alike.
	fmt.Fprintf(r.Out, "\n==[%d] %s ==\n-> %s\n", idx+1, step.DisplayName(), action.Line())

	if r.DryRun {
		action.Preview(r.Out)
		return nil
	}

	slog.Debug("executing step", "step", idx+1, "kind", action.Kind())
	return action.Execute(ctx, sc)
}
