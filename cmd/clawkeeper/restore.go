package main

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/logic/restore"
	"github.com/openclaw/clawkeeper/internal/staging"
)

func newRestoreCmd() *cobra.Command {
	var (
		flagSnapshot string
		flagMode     string
		flagTargets  []string
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a snapshot into the OpenClaw volumes",
		Long: `Restore stages the snapshot subtree next to each destination, verifies it,
and merges it in. Safe mode (the default) refuses any destination that
already has content; overwrite mode replaces the destination's content once
the restored subtree has been confirmed.

Targets are "snapshotPath:destination" mappings, or bare paths restored in
place. Without --target, every configured backup volume is restored in
place.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateRepository(); err != nil {
				return err
			}

			mode, err := staging.ParseMode(flagMode)
			if err != nil {
				return err
			}

			mappings := flagTargets
			if len(mappings) == 0 {
				mappings = cfg.Volumes
			}
			targets, err := restore.ParseTargets(mappings)
			if err != nil {
				return err
			}

			return restore.Run(cmd.Context(), deps, restore.Params{
				Engine:      newResticClient(cfg, deps),
				Targets:     targets,
				SnapshotRef: flagSnapshot,
				Mode:        mode,
			})
		},
	}

	cmd.Flags().StringVar(&flagSnapshot, "snapshot", constants.SnapshotLatest, "snapshot ID to restore")
	cmd.Flags().StringVar(&flagMode, "mode", string(staging.ModeSafe), "restore mode: safe or overwrite")
	cmd.Flags().StringArrayVar(&flagTargets, "target", nil, "snapshotPath:destination mapping (repeatable)")

	return cmd
}
