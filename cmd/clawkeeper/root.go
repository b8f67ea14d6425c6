package main

import (
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/config"
	"github.com/openclaw/clawkeeper/internal/restic"
	"github.com/openclaw/clawkeeper/internal/utils"
)

var flagDebug bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clawkeeper",
		Short: "Backup, restore and auto-redeploy orchestration for OpenClaw",
		Long: `clawkeeper drives restic snapshots of the OpenClaw data volumes into an
S3-compatible object store, restores them under a safe/overwrite staging
protocol, and triggers Coolify redeployments when a newer upstream release
is available.

Credentials are expected in the environment (injected by the secrets
wrapper) before clawkeeper starts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newBackupCmd(),
		newRestoreCmd(),
		newRedeployCmd(),
		newSnapshotsCmd(),
		newPruneCmd(),
		newScheduleCmd(),
	)

	return cmd
}

// setup constructs the config record and shared dependencies exactly once
// per invocation.
func setup() (*config.Config, *utils.Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := utils.NewLogger(cfg.Debug || flagDebug)
	if err != nil {
		return nil, nil, err
	}

	deps := &utils.Dependencies{
		Logger:     logger,
		CronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
	return cfg, deps, nil
}

func newResticClient(cfg *config.Config, deps *utils.Dependencies) *restic.Client {
	return &restic.Client{
		Binary:     cfg.ResticBinary,
		Repository: cfg.RepositoryLocator(),
		Env:        cfg.EngineEnv(),
		Logger:     deps.Logger.Named("restic"),
	}
}
