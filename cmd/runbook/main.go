package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/systemstart/runbook/pkg/api"
	"github.com/systemstart/runbook/pkg/logging"
	"github.com/systemstart/runbook/pkg/output"
	"github.com/systemstart/runbook/pkg/run"
)

var version = "dev"

const (
	_ = iota
	exitUsage
	exitDotenvError
	exitLoggingInitFailed
	exitTargetCheckFailed
	exitLoadDocumentFailed
	exitRunFailed
)

var (
	dryRun      bool
	verbose     bool
	loggingType string
	logLevel    string
	showVersion bool
)

func init() {
	flag.BoolVar(
		&dryRun,
		"dry-run",
		false,
		"render and preview every step without executing anything")
	flag.BoolVar(
		&verbose,
		"verbose",
		false,
		"enable debug diagnostics (implies -log-level debug)")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if verbose {
		logLevel = "debug"
	}
	if err := logging.Initialize(loggingType, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitLoggingInitFailed)
	}

	includeEnv()

	target := flag.Arg(0)
	if target == "" {
		slog.Error("usage: runbook [flags] <runbook.yaml | directory>")
		os.Exit(exitUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := run.New(dryRun)

	st, err := os.Stat(target)
	if err != nil {
		slog.Error("failed to check target", "target", target, "error", err)
		os.Exit(exitTargetCheckFailed)
	}

	if st.IsDir() {
		if err := runner.RunDirectory(ctx, target); err != nil {
			fail(err)
		}
	} else {
		doc, err := api.LoadDocument(target)
		if err != nil {
			slog.Error("failed to load runbook", "file", target, "error", err)
			os.Exit(exitLoadDocumentFailed)
		}
		if err := runner.RunDocument(ctx, doc); err != nil {
			fail(err)
		}
	}

	slog.Info("done")
}

// fail reports the failing step and terminates. A child's non-zero exit
// status is propagated as the process exit code.
func fail(err error) {
	slog.Error("run failed", "error", err)

	var exitErr *output.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		os.Exit(exitErr.Code)
	}
	os.Exit(exitRunFailed)
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
