package steps

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"

	"github.com/systemstart/runbook/pkg/api"
)

const defaultShellPrefix = "bash -c"

type shellOp struct {
	spec *api.ShellSpec
}

func (o *shellOp) Kind() string { return api.OpShell }

// Render resolves the command template and builds the shell invocation:
// the prefix program (default "bash -c") with the rendered command appended
// as its final argument.
func (o *shellOp) Render(sc Context) (Action, error) {
	command, err := sc.Renderer.Render(o.spec.Command, sc.Vars)
	if err != nil {
		return nil, fmt.Errorf("shell command: %w", err)
	}

	prefix := o.spec.Shell
	if prefix == "" {
		prefix = defaultShellPrefix
	}
	argv, err := shell.Fields(prefix, nil)
	if err != nil {
		return nil, fmt.Errorf("splitting shell prefix %q: %w", prefix, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("shell prefix %q is empty", prefix)
	}
	argv = append(argv, command)

	env, err := Compose(sc.Vars.Environ(), sc.Renderer, sc.Vars, sc.StepEnv, o.spec.Env)
	if err != nil {
		return nil, err
	}

	return &procAction{
		kind: api.OpShell,
		line: command,
		argv: argv,
		dir:  o.spec.Cwd,
		env:  env,
	}, nil
}
