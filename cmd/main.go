package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"os"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/contrib/envconfig"
	"go.temporal.io/sdk/workflow"

	temporalclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"stmtagent/internal"
	"stmtagent/internal/config"
	"stmtagent/internal/pipeline"
	"stmtagent/internal/temporal/activities"
	"stmtagent/internal/temporal/workflows"
	pkglog "stmtagent/pkg/log"
)

var (
	configPath = flag.String("config", "", "Path to the config file (default: config.yaml in the current directory)")
	jobID      = flag.String("job", "", "Run the named job inline and exit, instead of starting the worker")
)

func main() {
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.NewConfig(ctx, *configPath)
	if err != nil {
		fmt.Printf("Error: %v.\n", err)
		os.Exit(1)
	}

	logger := pkglog.New(cfg.Log)

	// One-shot mode for classic cron setups: run a single job, exit 0 or 1.
	if *jobID != "" {
		local := &pipeline.Local{Config: cfg, Logger: logger}
		if err := local.RunJob(ctx, *jobID); err != nil {
			logger.Error().Err(err).Str("job", *jobID).Msg("job failed")
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	clientOptions := envconfig.MustLoadDefaultClientOptions()

	if cfg.Temporal.TLS {
		clientOptions.ConnectionOptions = temporalclient.ConnectionOptions{
			TLS: &tls.Config{
				MinVersion: tls.VersionTLS12,
				NextProtos: []string{"h2"},
			},
		}
	}

	clientOptions.HostPort = cfg.Temporal.HostPort
	clientOptions.Namespace = cfg.Temporal.Namespace
	clientOptions.Logger = pkglog.NewTemporalAdapter(logger)

	c, err := temporalclient.DialContext(ctx, clientOptions)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create Temporal client")
	}
	defer c.Close()

	logger.Info().
		Str("hostPort", cfg.Temporal.HostPort).
		Str("queue", cfg.Temporal.TaskQueue).
		Msg("connected to Temporal")

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflowWithOptions(workflows.MirrorSyncWorkflow, workflow.RegisterOptions{Name: internal.WorkflowNameMirrorSync})
	w.RegisterWorkflowWithOptions(workflows.StatementImportWorkflow, workflow.RegisterOptions{Name: internal.WorkflowNameStatementImport})
	w.RegisterWorkflowWithOptions(workflows.StatementPipelineWorkflow, workflow.RegisterOptions{Name: internal.WorkflowNamePipeline})

	acts := activities.NewActivities(cfg)

	w.RegisterActivityWithOptions(acts.GetJobActivity, activity.RegisterOptions{Name: internal.ActivityNameGetJob})
	w.RegisterActivityWithOptions(acts.MirrorPullActivity, activity.RegisterOptions{Name: internal.ActivityNameMirrorPull})
	w.RegisterActivityWithOptions(acts.WriteSyncMarkerActivity, activity.RegisterOptions{Name: internal.ActivityNameWriteSyncMarker})
	w.RegisterActivityWithOptions(acts.CheckSyncMarkerActivity, activity.RegisterOptions{Name: internal.ActivityNameCheckSyncMarker})
	w.RegisterActivityWithOptions(acts.ImportRunActivity, activity.RegisterOptions{Name: internal.ActivityNameImportRun})
	w.RegisterActivityWithOptions(acts.ArchiveZipActivity, activity.RegisterOptions{Name: internal.ActivityNameArchiveZip})
	w.RegisterActivityWithOptions(acts.ArchiveUploadS3Activity, activity.RegisterOptions{Name: internal.ActivityNameArchiveUploadS3})
	w.RegisterActivityWithOptions(acts.FileCleanupActivity, activity.RegisterOptions{Name: internal.ActivityNameFileCleanup})

	logger.Info().Int("jobs", len(cfg.Jobs)).Msg("loaded jobs from config")
	for _, j := range cfg.Jobs {
		logger.Info().Str("id", j.ID).Str("provider", j.Provider).Msg("job registered")
	}

	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal().Err(err).Msg("unable to start worker")
	}
}
