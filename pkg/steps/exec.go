package steps

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/systemstart/runbook/pkg/api"
)

type execOp struct {
	spec *api.ExecSpec
}

func (o *execOp) Kind() string { return api.OpExec }

// Render resolves the program and every argument independently. No shell is
// involved: the argument vector is spawned as-is, and the joined display
// line exists for the header only.
func (o *execOp) Render(sc Context) (Action, error) {
	cmd, err := sc.Renderer.Render(o.spec.Cmd, sc.Vars)
	if err != nil {
		return nil, fmt.Errorf("exec cmd: %w", err)
	}

	argv := make([]string, 0, len(o.spec.Args)+1)
	argv = append(argv, cmd)
	for i, arg := range o.spec.Args {
		rendered, err := sc.Renderer.Render(arg, sc.Vars)
		if err != nil {
			return nil, fmt.Errorf("exec args[%d]: %w", i, err)
		}
		argv = append(argv, rendered)
	}

	env, err := Compose(sc.Vars.Environ(), sc.Renderer, sc.Vars, sc.StepEnv, o.spec.Env)
	if err != nil {
		return nil, err
	}

	return &procAction{
		kind: api.OpExec,
		line: joinQuoted(argv),
		argv: argv,
		dir:  o.spec.Cwd,
		env:  env,
	}, nil
}

// joinQuoted renders an argv as a copy-pasteable shell line for display.
func joinQuoted(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = a
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
