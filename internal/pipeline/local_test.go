package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stmtagent/internal/config"
	"stmtagent/internal/marker"
)

func configWithJobs(t *testing.T, jobs []config.Job) *Local {
	t.Helper()
	return &Local{
		Config: &config.Config{TempDir: t.TempDir(), Jobs: jobs},
		Logger: zerolog.Nop(),
	}
}

func importJob(t *testing.T, script string, extra map[string]interface{}) []config.Job {
	t.Helper()
	cfg := map[string]interface{}{
		"interpreter": "sh",
		"script":      script,
		"archive_dir": t.TempDir(),
		"url":         "https://odoo.example.com",
		"database":    "books",
		"username":    "admin",
		"password":    "secret",
		"log_file":    filepath.Join(t.TempDir(), "import.log"),
	}
	for k, v := range extra {
		cfg[k] = v
	}
	return []config.Job{{ID: "statement-import", Provider: "statement-import", Config: cfg}}
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "importer.sh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func TestRunJobUnknownJob(t *testing.T) {
	l := configWithJobs(t, nil)
	err := l.RunJob(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job not found")
}

func TestRunImportSuccessWritesLog(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho imported\n")
	jobs := importJob(t, script, nil)
	l := configWithJobs(t, jobs)

	require.NoError(t, l.RunJob(context.Background(), "statement-import"))

	logPath := jobs[0].Config["log_file"].(string)
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "started")
	assert.Contains(t, content, "--- stdout:\nimported")
	assert.Contains(t, content, "XFER Okay")
	assert.Contains(t, content, "finished")
}

func TestRunImportFailureWritesErrorMarker(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'cannot reach odoo' >&2\nexit 1\n")
	jobs := importJob(t, script, nil)
	l := configWithJobs(t, jobs)

	err := l.RunJob(context.Background(), "statement-import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "importer exited 1")

	data, err := os.ReadFile(jobs[0].Config["log_file"].(string))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "--- stderr:\ncannot reach odoo")
	assert.Contains(t, content, "ERROR in transfer")
	assert.NotContains(t, content, "XFER Okay")
}

func TestRunImportMissingInterpreterFailsBeforeLogging(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\n")
	jobs := importJob(t, script, map[string]interface{}{"interpreter": "no-such-interpreter"})
	l := configWithJobs(t, jobs)

	err := l.RunJob(context.Background(), "statement-import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-interpreter")

	// Pre-flight failures never touch the job log.
	_, statErr := os.Stat(jobs[0].Config["log_file"].(string))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunImportRequireFreshSync(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho imported\n")
	jobs := importJob(t, script, map[string]interface{}{"require_fresh_sync": true})
	l := configWithJobs(t, jobs)

	err := l.RunJob(context.Background(), "statement-import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completed sync")

	archiveDir := jobs[0].Config["archive_dir"].(string)
	require.NoError(t, marker.Write(archiveDir, marker.Marker{
		RunID:       "mirror-run-1",
		CompletedAt: time.Now(),
	}))

	assert.NoError(t, l.RunJob(context.Background(), "statement-import"))
}

func TestRunMirrorMissingKeyFileFailsBeforeConnecting(t *testing.T) {
	jobs := []config.Job{{
		ID:       "postfinance-pull",
		Provider: "sftp-mirror",
		Config: map[string]interface{}{
			"host":       "host.invalid",
			"port":       22,
			"username":   "fds-user",
			"key_file":   "/no/such/key",
			"remote_dir": "/yellow-net-reports",
			"local_dir":  t.TempDir(),
			"log_file":   filepath.Join(t.TempDir(), "transfer.log"),
		},
	}}
	l := configWithJobs(t, jobs)

	err := l.RunJob(context.Background(), "postfinance-pull")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/no/such/key")
}

func TestRunJobValidationNamesAllMissingFields(t *testing.T) {
	jobs := []config.Job{{
		ID:       "postfinance-pull",
		Provider: "sftp-mirror",
		Config:   map[string]interface{}{"host": "mftp.example.ch"},
	}}
	l := configWithJobs(t, jobs)

	err := l.RunJob(context.Background(), "postfinance-pull")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "log_file")
}
