// Package runner is a small subprocess-invocation layer. It exists so that
// callers get exit status, stdout and stderr back as separate structured
// fields instead of one commingled stream.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result captures the outcome of a finished subprocess.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// ErrBinaryNotFound reports a missing external program. Callers treat it as
// a fatal pre-flight failure, before any network or filesystem work.
var ErrBinaryNotFound = errors.New("required program not found")

// CheckBinary verifies that name resolves to an executable on PATH (or is
// an absolute path to one).
func CheckBinary(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, name)
	}
	return nil
}

// Run executes the command and waits for it to finish. A non-zero exit is
// not an error here: the caller decides what the exit code means. Run only
// returns an error when the process could not be started or was killed by
// the context.
func Run(ctx context.Context, workDir, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return result, nil
}
