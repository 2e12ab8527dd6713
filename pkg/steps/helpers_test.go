package steps

import (
	"bytes"

	"github.com/systemstart/runbook/pkg/render"
)

// testContext builds a step context over a fake environment snapshot with
// buffered output writers.
func testContext(globals map[string]any, environ []string, stepEnv map[string]string) (Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errBuf bytes.Buffer
	sc := Context{
		Renderer: render.New(),
		Vars:     render.NewContext(globals, environ),
		StepEnv:  stepEnv,
		Stdout:   &out,
		Stderr:   &errBuf,
	}
	return sc, &out, &errBuf
}
