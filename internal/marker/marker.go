// Package marker persists the sync-completion handoff between the mirror
// job and the import job. The original design ordered the two jobs by
// wall-clock schedule alone; the marker lets the import side verify that a
// sync actually finished, and when.
package marker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the marker file written into the mirrored directory.
const FileName = ".last-sync.json"

type Marker struct {
	RunID       string    `json:"run_id"`
	CompletedAt time.Time `json:"completed_at"`
	Transferred int       `json:"transferred"`
	Skipped     int       `json:"skipped"`
}

// Write stores the marker in dir, atomically.
func Write(dir string, m Marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create marker temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, FileName))
}

// Read loads the marker from dir.
func Read(dir string) (*Marker, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	m := new(Marker)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse sync marker in %s: %w", dir, err)
	}
	return m, nil
}

// CheckFresh fails when no marker exists or the last completed sync is
// older than maxAge. A maxAge of zero only requires that a marker exists.
func CheckFresh(dir string, maxAge time.Duration, now time.Time) (*Marker, error) {
	m, err := Read(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no completed sync recorded in %s", dir)
		}
		return nil, err
	}
	if maxAge > 0 && now.Sub(m.CompletedAt) > maxAge {
		return nil, fmt.Errorf("last sync finished %s, older than %s", m.CompletedAt.Format(time.RFC3339), maxAge)
	}
	return m, nil
}
