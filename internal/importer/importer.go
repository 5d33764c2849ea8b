// Package importer invokes the external CAMT.053 statement importer. The
// importer itself (duplicate detection, XML parsing, the accounting-system
// upload) is a separate program; this package only owns its command line,
// which is a stable contract: one positional archive directory plus
// --odoo-url, --db, --username and --password.
package importer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"stmtagent/internal/job"
	"stmtagent/internal/runner"
)

// Args builds the importer's command line, minus the interpreter.
func Args(cfg *job.ImportConfig) []string {
	args := []string{
		cfg.Script,
		cfg.ArchiveDir,
		"--odoo-url=" + cfg.URL,
		"--db=" + cfg.Database,
		"--username=" + cfg.Username,
		"--password=" + cfg.Password,
	}
	if cfg.Debug {
		args = append(args, "--debug")
	}
	return args
}

// TestConnectionArgs builds the command line for the importer's credential
// probe.
func TestConnectionArgs(cfg *job.ImportConfig) []string {
	return append(Args(cfg), "--test-connection")
}

// Preflight verifies the interpreter and the importer script are present.
// It is called before any work so a broken deployment fails immediately,
// with a diagnostic naming the missing piece.
func Preflight(cfg *job.ImportConfig) error {
	if err := runner.CheckBinary(cfg.Interpreter); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Script); err != nil {
		return fmt.Errorf("importer script %s not found: %w", cfg.Script, err)
	}
	return nil
}

// TestConnection runs the importer's --test-connection probe. The probe
// exits zero even on bad credentials and reports the outcome on stdout, so
// the stdout marker is what decides.
func TestConnection(ctx context.Context, cfg *job.ImportConfig) (*runner.Result, error) {
	res, err := runner.Run(ctx, workDir(), cfg.Interpreter, TestConnectionArgs(cfg)...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, fmt.Errorf("importer connection test exited %d", res.ExitCode)
	}
	if !strings.Contains(res.Stdout, "Connection successful") {
		return res, fmt.Errorf("importer could not authenticate against %s", cfg.URL)
	}
	return res, nil
}

// Run invokes the importer against the archive directory. The importer's
// exit code and output are passed back uninterpreted; the caller decides
// what they mean.
func Run(ctx context.Context, cfg *job.ImportConfig) (*runner.Result, error) {
	return runner.Run(ctx, workDir(), cfg.Interpreter, Args(cfg)...)
}

// The original job changed to the invoking user's home directory before
// running the importer; keep that so relative paths inside the importer
// resolve the same way.
func workDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
