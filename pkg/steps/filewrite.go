package steps

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/systemstart/runbook/pkg/api"
)

const defaultFileMode fs.FileMode = 0o644

type fileOp struct {
	spec *api.FileSpec
}

func (o *fileOp) Kind() string { return api.OpFile }

// Render resolves the destination and content templates. A malformed mode
// string falls back to the default permission with a warning instead of
// failing the step.
func (o *fileOp) Render(sc Context) (Action, error) {
	dest, err := sc.Renderer.Render(o.spec.Dest, sc.Vars)
	if err != nil {
		return nil, fmt.Errorf("file dest: %w", err)
	}
	content, err := sc.Renderer.Render(o.spec.Content, sc.Vars)
	if err != nil {
		return nil, fmt.Errorf("file content: %w", err)
	}

	mode, hasMode := parseMode(o.spec.Mode)
	return &fileAction{
		dest:    dest,
		content: content,
		backup:  o.spec.Backup,
		mode:    mode,
		hasMode: hasMode,
	}, nil
}

// parseMode reports whether a mode was requested at all; a malformed mode
// string counts as requested but falls back to the default permission.
func parseMode(mode string) (fs.FileMode, bool) {
	if mode == "" {
		return defaultFileMode, false
	}
	m, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		slog.Warn("malformed file mode, using default", "mode", mode, "default", fmt.Sprintf("%04o", defaultFileMode))
		return defaultFileMode, true
	}
	return fs.FileMode(m), true
}

type fileAction struct {
	dest    string
	content string
	backup  bool
	mode    fs.FileMode
	hasMode bool
}

func (a *fileAction) Kind() string { return api.OpFile }

func (a *fileAction) Line() string { return "write " + a.dest }

func (a *fileAction) Preview(w io.Writer) {
	fmt.Fprintf(w, "Content preview:\n%s\n", a.content)
}

// Execute writes the rendered content in one shot: optional backup of an
// existing destination first, then parents, then the file itself. A failed
// backup aborts before anything is overwritten.
func (a *fileAction) Execute(_ context.Context, sc Context) error {
	if a.backup {
		if _, err := os.Stat(a.dest); err == nil {
			bak := a.dest + ".bak"
			if err := copyFile(a.dest, bak); err != nil {
				return fmt.Errorf("backing up %s: %w", a.dest, err)
			}
			fmt.Fprintf(sc.Stdout, "[file] backup -> %s\n", bak)
		}
	}

	if parent := filepath.Dir(a.dest); parent != "." {
		if err := os.MkdirAll(parent, 0o750); err != nil {
			return fmt.Errorf("creating parent directories: %w", err)
		}
	}

	if err := os.WriteFile(a.dest, []byte(a.content), a.mode); err != nil {
		return fmt.Errorf("writing %s: %w", a.dest, err)
	}
	// WriteFile permissions are masked by the umask on creation and left
	// alone for a pre-existing file, so apply a requested mode explicitly.
	// Without one, an existing file keeps its permissions.
	if a.hasMode {
		if err := os.Chmod(a.dest, a.mode); err != nil {
			return fmt.Errorf("setting mode on %s: %w", a.dest, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, info.Mode().Perm())
}
