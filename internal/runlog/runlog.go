// Package runlog writes the per-job run logs. The format is deliberately
// plain and stable: operators grep these files for the "XFER Okay" and
// "ERROR in transfer" markers, so the marker strings must not change.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	markerOkay  = "XFER Okay"
	markerError = "ERROR in transfer"
	separator   = "----------------------------------------"
)

// Writer appends run records to a job log file. The file is opened in
// append mode and never truncated; rotation is an external concern.
type Writer struct {
	f     *os.File
	runID string
}

// Open opens (creating if needed) the log file at path for appending.
func Open(path, runID string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return &Writer{f: f, runID: runID}, nil
}

func (w *Writer) line(format string, args ...any) error {
	_, err := fmt.Fprintf(w.f, format+"\n", args...)
	return err
}

// Start appends the run start timestamp line.
func (w *Writer) Start(t time.Time) error {
	return w.line("run %s started %s", w.runID, t.UTC().Format(time.RFC3339))
}

// Transfer appends one line per transferred file.
func (w *Writer) Transfer(name string, size int64) error {
	return w.line("XFER %s (%d bytes)", name, size)
}

// Skip records a remote file that was already up to date locally.
func (w *Writer) Skip(name string) error {
	return w.line("SKIP %s (up to date)", name)
}

// Section labels a block of pass-through output from an external program,
// keeping its stdout and stderr apart instead of interleaving them.
func (w *Writer) Section(label, content string) error {
	if content == "" {
		return w.line("--- %s: (empty)", label)
	}
	if err := w.line("--- %s:", label); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.f, content)
	return err
}

// Okay appends the success marker.
func (w *Writer) Okay() error {
	return w.line(markerOkay)
}

// Error appends the failure marker with the cause.
func (w *Writer) Error(cause error) error {
	return w.line("%s: %v", markerError, cause)
}

// End appends the run end timestamp line and the separator.
func (w *Writer) End(t time.Time) error {
	if err := w.line("run %s finished %s", w.runID, t.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.line(separator)
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}
