package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/systemstart/runbook/pkg/api"
)

// Pattern matches runbook documents during directory discovery.
const Pattern = "**/*.runbook.yaml"

// Discover finds runbook documents under root, sorted by path so a
// directory of runbooks executes in a stable order.
func Discover(root string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), Pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s under %s: %w", Pattern, root, err)
	}

	slices.Sort(matches)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(root, m)
	}
	return paths, nil
}

// RunDirectory discovers every runbook under root and executes them in
// order, halting on the first failing document.
func (r *Runner) RunDirectory(ctx context.Context, root string) error {
	paths, err := Discover(root)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		slog.Warn("no runbook documents found", "dir", root, "pattern", Pattern)
		return nil
	}

	slog.Info("discovered runbooks", "count", len(paths))

	for _, p := range paths {
		doc, err := api.LoadDocument(p)
		if err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
		slog.Info("executing runbook", "path", p)
		if err := r.RunDocument(ctx, doc); err != nil {
			return fmt.Errorf("runbook %s: %w", p, err)
		}
	}
	return nil
}
