package steps

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/systemstart/runbook/pkg/api"
)

const defaultSSHUser = "root"

// ErrPasswordAuth is returned when a step requests password authentication.
// There is no non-interactive password path through the ssh client, so the
// request is rejected explicitly instead of silently attempted.
var ErrPasswordAuth = errors.New("password authentication is not supported in non-interactive runs")

type sshOp struct {
	spec *api.SSHSpec
}

func (o *sshOp) Kind() string { return api.OpSSH }

// Render builds the ssh client invocation: host-verification flags, an
// identity flag for key auth, the user@host target, and the remote command
// prefixed with shell-quoted inline environment assignments. Environment
// overrides travel inline because the client does not forward arbitrary
// variables to the remote side.
func (o *sshOp) Render(sc Context) (Action, error) {
	if o.spec.Auth != nil && o.spec.Auth.Kind == api.AuthKindPassword {
		return nil, fmt.Errorf("ssh auth: %w", ErrPasswordAuth)
	}

	host, err := sc.Renderer.Render(o.spec.Host, sc.Vars)
	if err != nil {
		return nil, fmt.Errorf("ssh host: %w", err)
	}

	user := defaultSSHUser
	if o.spec.User != "" {
		user, err = sc.Renderer.Render(o.spec.User, sc.Vars)
		if err != nil {
			return nil, fmt.Errorf("ssh user: %w", err)
		}
	}

	command, err := sc.Renderer.Render(o.spec.Command, sc.Vars)
	if err != nil {
		return nil, fmt.Errorf("ssh command: %w", err)
	}

	argv := []string{"ssh"}
	argv = append(argv, checkHostFlags(o.spec.CheckHost)...)

	if o.spec.Auth != nil && o.spec.Auth.Kind == api.AuthKindKey && o.spec.Auth.KeyPath != "" {
		keyPath, err := sc.Renderer.Render(o.spec.Auth.KeyPath, sc.Vars)
		if err != nil {
			return nil, fmt.Errorf("ssh auth.key_path: %w", err)
		}
		argv = append(argv, "-i", keyPath)
	}

	remote, err := o.remoteCommand(sc, command)
	if err != nil {
		return nil, err
	}
	argv = append(argv, user+"@"+host, remote)

	return &procAction{
		kind: api.OpSSH,
		line: strings.Join(argv, " "),
		argv: argv,
		// The client inherits the parent environment; remote overrides are
		// already inline in the command.
	}, nil
}

// remoteCommand prefixes the rendered command with inline K=V assignments
// for the merged step- and operation-level env overrides, each value
// shell-quoted. Keys are sorted so the invocation is deterministic.
func (o *sshOp) remoteCommand(sc Context, command string) (string, error) {
	merged := make(map[string]string, len(sc.StepEnv)+len(o.spec.Env))
	maps.Copy(merged, sc.StepEnv)
	maps.Copy(merged, o.spec.Env)
	if len(merged) == 0 {
		return command, nil
	}

	env, err := sc.Renderer.RenderMap(merged, sc.Vars)
	if err != nil {
		return "", fmt.Errorf("ssh env: %w", err)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, k := range keys {
		quoted, err := syntax.Quote(env[k], syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("ssh env %q: %w", k, err)
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(quoted)
		sb.WriteByte(' ')
	}
	sb.WriteString(command)
	return sb.String(), nil
}

func checkHostFlags(mode string) []string {
	switch mode {
	case api.CheckHostYes:
		return nil
	case api.CheckHostFingerprint:
		// No fingerprint-pinning contract exists yet; behave like "yes" but
		// make the gap visible.
		slog.Warn("check_host \"fingerprint\" has no pinning support, falling back to host verification")
		return nil
	default: // "no" and unset disable verification
		return []string{"-o", "StrictHostKeyChecking=no", "-o", "UserKnownHostsFile=/dev/null"}
	}
}
