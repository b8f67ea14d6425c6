package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/logic/backup"
	"github.com/openclaw/clawkeeper/internal/scheduler"
)

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run backups on the configured cron schedule until stopped",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateSchedule(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			params := backup.Params{
				Client:    newResticClient(cfg, deps),
				Volumes:   cfg.Volumes,
				Host:      cfg.BackupHost,
				Tags:      []string{constants.ManagedByTag},
				Retention: cfg.Retention,
			}
			return scheduler.Run(ctx, deps, cfg.BackupSchedule, func(jobCtx context.Context) error {
				return backup.Run(jobCtx, deps, params)
			})
		},
	}
}
