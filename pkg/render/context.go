package render

import (
	"maps"
	"strings"
)

// EnvKey is the reserved template name exposing the process environment
// snapshot, e.g. {{ .env.HOME }}. A global with the same name is shadowed.
const EnvKey = "env"

// Context holds the variables available to templates: the document's globals
// tree plus an injected environment snapshot. It is constructed once per run
// and read-only afterwards.
type Context struct {
	data    map[string]any
	environ []string
}

// NewContext builds a context from the document globals and an environment
// snapshot in "K=V" form (typically os.Environ, or a fake in tests).
func NewContext(globals map[string]any, environ []string) *Context {
	data := make(map[string]any, len(globals)+1)
	maps.Copy(data, globals)

	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	data[EnvKey] = env

	return &Context{data: data, environ: environ}
}

// Environ returns the raw environment snapshot the context was built with.
func (c *Context) Environ() []string {
	return c.environ
}
