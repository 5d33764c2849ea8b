package activities

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"stmtagent/internal/job"
)

func importTestJob(t *testing.T, script string) (*job.Job, string) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "import.log")
	return &job.Job{
		ID:       "statement-import",
		Provider: job.ProviderStatementImport,
		Config: &job.ImportConfig{
			Interpreter: "sh",
			Script:      script,
			ArchiveDir:  t.TempDir(),
			URL:         "https://odoo.example.com",
			Database:    "books",
			Username:    "admin",
			Password:    "secret",
			LogFile:     logFile,
		},
	}, logFile
}

func writeImporterScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "process-statements.sh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func TestImportRunActivity(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	acts := &Activities{}
	env.RegisterActivity(acts.ImportRunActivity)

	script := writeImporterScript(t, "#!/bin/sh\necho \"processing $1\"\n")
	j, logFile := importTestJob(t, script)

	val, err := env.ExecuteActivity(acts.ImportRunActivity, ImportRunActivityInput{Job: j, RunID: "run-1"})
	require.NoError(t, err)

	var res ImportRunActivityOutput
	require.NoError(t, val.Get(&res))
	assert.Equal(t, 0, res.ExitCode)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "run run-1 started")
	assert.Contains(t, content, "--- stdout:\nprocessing")
	assert.Contains(t, content, "XFER Okay")
	assert.Contains(t, content, "run run-1 finished")
}

func TestImportRunActivityFailure(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	acts := &Activities{}
	env.RegisterActivity(acts.ImportRunActivity)

	script := writeImporterScript(t, "#!/bin/sh\necho 'odoo unreachable' >&2\nexit 2\n")
	j, logFile := importTestJob(t, script)

	_, err := env.ExecuteActivity(acts.ImportRunActivity, ImportRunActivityInput{Job: j, RunID: "run-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "importer exited 2")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "--- stderr:\nodoo unreachable")
	assert.Contains(t, content, "ERROR in transfer")
}

func TestImportRunActivityMissingInterpreter(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	acts := &Activities{}
	env.RegisterActivity(acts.ImportRunActivity)

	script := writeImporterScript(t, "#!/bin/sh\n")
	j, logFile := importTestJob(t, script)
	j.Config.(*job.ImportConfig).Interpreter = "missing-interpreter-binary"

	_, err := env.ExecuteActivity(acts.ImportRunActivity, ImportRunActivityInput{Job: j, RunID: "run-3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-interpreter-binary")

	_, statErr := os.Stat(logFile)
	assert.True(t, os.IsNotExist(statErr))
}
