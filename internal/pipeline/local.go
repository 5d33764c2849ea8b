// Package pipeline runs jobs inline, without Temporal. This is the
// classic-cron surface: one process, one job, exit 0 or 1.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stmtagent/internal/config"
	"stmtagent/internal/importer"
	"stmtagent/internal/job"
	"stmtagent/internal/marker"
	"stmtagent/internal/mirror"
	"stmtagent/internal/runlog"
)

// Local executes configured jobs synchronously in the current process.
type Local struct {
	Config *config.Config
	Logger zerolog.Logger
}

// RunJob looks up, validates and executes the named job.
func (l *Local) RunJob(ctx context.Context, id string) error {
	j, err := l.Config.FindJob(id)
	if err != nil {
		return err
	}

	switch j.Provider {
	case job.ProviderSFTPMirror:
		cfg, err := job.LoadAs[*job.MirrorConfig](*j)
		if err != nil {
			return err
		}
		return l.runMirror(ctx, j.ID, cfg)
	case job.ProviderStatementImport:
		cfg, err := job.LoadAs[*job.ImportConfig](*j)
		if err != nil {
			return err
		}
		return l.runImport(ctx, j.ID, cfg)
	default:
		return fmt.Errorf("job %s: unknown provider %s", id, j.Provider)
	}
}

func (l *Local) runMirror(ctx context.Context, jobID string, cfg *job.MirrorConfig) error {
	runID := uuid.NewString()
	logger := l.Logger.With().Str("job", jobID).Str("run", runID).Logger()
	logger.Info().Str("host", cfg.Host).Msg("starting mirror sync")

	log, err := runlog.Open(cfg.LogFile, runID)
	if err != nil {
		return err
	}
	defer log.Close()

	if err := log.Start(time.Now()); err != nil {
		return err
	}

	report, pullErr := dialAndPull(ctx, cfg)
	if pullErr != nil {
		logger.Error().Err(pullErr).Msg("transfer failed")
		log.Error(pullErr)
		log.End(time.Now())
		return pullErr
	}

	for _, tr := range report.Transferred {
		if err := log.Transfer(tr.Name, tr.Size); err != nil {
			return err
		}
	}
	if err := log.Okay(); err != nil {
		return err
	}
	if err := log.End(time.Now()); err != nil {
		return err
	}

	err = marker.Write(cfg.LocalDir, marker.Marker{
		RunID:       runID,
		CompletedAt: time.Now(),
		Transferred: len(report.Transferred),
		Skipped:     report.Skipped,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int("transferred", len(report.Transferred)).
		Int("skipped", report.Skipped).
		Msg("mirror sync completed")
	return nil
}

func dialAndPull(ctx context.Context, cfg *job.MirrorConfig) (*mirror.Report, error) {
	client, err := mirror.Dial(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return mirror.Pull(ctx, client.Source(), cfg.RemoteDir, cfg.LocalDir)
}

func (l *Local) runImport(ctx context.Context, jobID string, cfg *job.ImportConfig) error {
	runID := uuid.NewString()
	logger := l.Logger.With().Str("job", jobID).Str("run", runID).Logger()
	logger.Info().Str("url", cfg.URL).Msg("starting statement import")

	if err := importer.Preflight(cfg); err != nil {
		return err
	}

	if cfg.RequireFreshSync {
		m, err := marker.CheckFresh(cfg.ArchiveDir, time.Duration(cfg.MaxSyncAge), time.Now())
		if err != nil {
			return fmt.Errorf("refusing to import: %w", err)
		}
		logger.Info().Str("last_mirror_run", m.RunID).Msg("sync marker verified")
	}

	log, err := runlog.Open(cfg.LogFile, runID)
	if err != nil {
		return err
	}
	defer log.Close()

	if err := log.Start(time.Now()); err != nil {
		return err
	}

	if cfg.TestConnection {
		if _, err := importer.TestConnection(ctx, cfg); err != nil {
			log.Error(err)
			log.End(time.Now())
			return err
		}
	}

	res, err := importer.Run(ctx, cfg)
	if err != nil {
		log.Error(err)
		log.End(time.Now())
		return err
	}

	log.Section("stdout", res.Stdout)
	log.Section("stderr", res.Stderr)

	if res.ExitCode != 0 {
		importErr := fmt.Errorf("importer exited %d", res.ExitCode)
		log.Error(importErr)
		log.End(time.Now())
		return importErr
	}

	if err := log.Okay(); err != nil {
		return err
	}
	if err := log.End(time.Now()); err != nil {
		return err
	}

	logger.Info().Dur("duration", res.Duration).Msg("statement import completed")
	return nil
}
