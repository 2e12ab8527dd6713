package steps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/systemstart/runbook/pkg/render"
)

// Compose merges the base environment snapshot with rendered override sets
// into a "K=V" slice for a child process. Later sources win on key
// collision: base < step-level overrides < operation-level overrides.
// Override values are templates; a render failure is attributed to the
// offending key.
func Compose(base []string, r *render.Renderer, vars *render.Context, overrides ...map[string]string) ([]string, error) {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}

	for _, set := range overrides {
		rendered, err := r.RenderMap(set, vars)
		if err != nil {
			return nil, fmt.Errorf("composing environment: %w", err)
		}
		for k, v := range rendered {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	slices.Sort(out)
	return out, nil
}
