package main

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/logic/backup"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the OpenClaw volumes and enforce retention",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateBackup(); err != nil {
				return err
			}

			return backup.Run(cmd.Context(), deps, backup.Params{
				Client:    newResticClient(cfg, deps),
				Volumes:   cfg.Volumes,
				Host:      cfg.BackupHost,
				Tags:      []string{constants.ManagedByTag},
				Retention: cfg.Retention,
			})
		},
	}
}
