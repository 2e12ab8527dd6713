package output

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// SpawnError reports a child process that could not be started at all
// (binary not found, not executable, permission denied).
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports a child process that ran and exited non-zero.
type ExitError struct {
	Kind string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s process exited with status %d", e.Kind, e.Code)
}

// Run spawns argv as a child process and streams its output line by line,
// tagging each line with the operation kind and the originating channel:
//
//	[shell][out] hello
//	[shell][err] oops
//
// Both pipes are drained concurrently and fully before the exit status is
// collected, so fast-exiting children never lose output. Order is preserved
// within each channel; interleaving between the two is best-effort. A read
// error on a pipe is logged and does not fail the step; only the exit status
// does.
//
// An empty env means inherit; dir "" means current directory.
func Run(ctx context.Context, argv []string, dir string, env []string, kind string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("opening stdout pipe: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("opening stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Path: argv[0], Err: err}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go drain(&wg, outPipe, stdout, kind, "out")
	go drain(&wg, errPipe, stderr, kind, "err")
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Kind: kind, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("waiting for %s: %w", argv[0], err)
	}
	return nil
}

// drain reads with ReadString rather than a Scanner so lines of any length
// stream through instead of aborting the channel at the Scanner's buffer cap.
func drain(wg *sync.WaitGroup, r io.Reader, w io.Writer, kind, channel string) {
	defer wg.Done()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fmt.Fprintf(w, "[%s][%s] %s\n", kind, channel, strings.TrimSuffix(line, "\n"))
		}
		if err != nil {
			if err != io.EOF {
				slog.Warn("reading child output", "kind", kind, "channel", channel, "error", err)
			}
			return
		}
	}
}
