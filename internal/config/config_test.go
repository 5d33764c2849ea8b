package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stmtagent/internal/job"
)

func TestNewConfig_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	f, err := os.Create(configFile)
	require.NoError(t, err)
	f.Close()

	cfg, err := NewConfig(context.Background(), configFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, os.TempDir(), cfg.TempDir)

	assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
	assert.Equal(t, "default", cfg.Temporal.Namespace)
	assert.Equal(t, "statements", cfg.Temporal.TaskQueue)
	assert.False(t, cfg.Temporal.TLS)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "stdout", cfg.Log.Path)
	assert.Empty(t, cfg.Jobs)
}

func TestNewConfig_MissingFileIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-config.yaml")

	cfg, err := NewConfig(context.Background(), missing)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), missing)
	assert.Contains(t, err.Error(), "not found")
}

const sampleConfig = `
temp_dir: /tmp/stmtagent
jobs:
  - id: postfinance-pull
    provider: sftp-mirror
    config:
      host: mftp.example.ch
      port: 8022
      username: fds-user
      key_file: /etc/stmtagent/id_rsa
      remote_dir: /yellow-net-reports
      local_dir: /var/lib/stmtagent/camt053
      log_file: /var/log/stmtagent/transfer.log
  - id: statement-import
    provider: statement-import
    config:
      interpreter: python3
      script: /opt/importer/process-statements.py
      archive_dir: /var/lib/stmtagent/camt053
      url: https://odoo.example.com
      database: books
      username: admin
      password: secret
      log_file: /var/log/stmtagent/import.log
  - id: broken-pull
    provider: sftp-mirror
    config:
      host: mftp.example.ch
`

func writeSampleConfig(t *testing.T) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(sampleConfig), 0o644))
	return configFile
}

func TestNewConfig_Jobs(t *testing.T) {
	cfg, err := NewConfig(context.Background(), writeSampleConfig(t))
	require.NoError(t, err)
	require.Len(t, cfg.Jobs, 3)
	assert.Equal(t, "/tmp/stmtagent", cfg.TempDir)
}

func TestFindJob_Mirror(t *testing.T) {
	cfg, err := NewConfig(context.Background(), writeSampleConfig(t))
	require.NoError(t, err)

	j, err := cfg.FindJob("postfinance-pull")
	require.NoError(t, err)
	assert.Equal(t, job.ProviderSFTPMirror, j.Provider)

	mirror, err := job.LoadAs[*job.MirrorConfig](*j)
	require.NoError(t, err)
	assert.Equal(t, "mftp.example.ch", mirror.Host)
	assert.Equal(t, 8022, mirror.Port)
	assert.Equal(t, "/var/lib/stmtagent/camt053", mirror.LocalDir)
}

func TestFindJob_Import(t *testing.T) {
	cfg, err := NewConfig(context.Background(), writeSampleConfig(t))
	require.NoError(t, err)

	j, err := cfg.FindJob("statement-import")
	require.NoError(t, err)

	imp, err := job.LoadAs[*job.ImportConfig](*j)
	require.NoError(t, err)
	assert.Equal(t, "python3", imp.Interpreter)
	assert.Equal(t, "books", imp.Database)
}

func TestFindJob_ValidationFailure(t *testing.T) {
	cfg, err := NewConfig(context.Background(), writeSampleConfig(t))
	require.NoError(t, err)

	_, err = cfg.FindJob("broken-pull")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Contains(t, err.Error(), "key_file")
	assert.Contains(t, err.Error(), "local_dir")
}

func TestFindJob_Unknown(t *testing.T) {
	cfg, err := NewConfig(context.Background(), writeSampleConfig(t))
	require.NoError(t, err)

	_, err = cfg.FindJob("no-such-job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job not found")
}
