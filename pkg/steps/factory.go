package steps

import (
	"errors"
	"fmt"

	"github.com/systemstart/runbook/pkg/api"
)

var (
	// ErrNoOperation marks a step without any operation spec.
	ErrNoOperation = errors.New("step has no operation spec")
	// ErrAmbiguousOperation marks a step with more than one operation spec.
	ErrAmbiguousOperation = errors.New("step has multiple operation specs")
)

// New selects the operation implementation for the single populated spec of
// a step. Zero or several populated specs are configuration errors; a
// validated document never triggers them, but the factory checks anyway
// since it is the last gate before execution.
func New(step *api.Step) (Op, error) {
	var op Op
	count := 0

	if step.Shell != nil {
		op = &shellOp{spec: step.Shell}
		count++
	}
	if step.Exec != nil {
		op = &execOp{spec: step.Exec}
		count++
	}
	if step.SSH != nil {
		op = &sshOp{spec: step.SSH}
		count++
	}
	if step.File != nil {
		op = &fileOp{spec: step.File}
		count++
	}

	switch {
	case count == 0:
		return nil, ErrNoOperation
	case count > 1:
		return nil, fmt.Errorf("%w: %d populated", ErrAmbiguousOperation, count)
	}
	return op, nil
}
