package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/constants"
)

func newSnapshotsCmd() *cobra.Command {
	var flagAll bool

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List snapshots in the repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateRepository(); err != nil {
				return err
			}

			tag := constants.ManagedByTag
			if flagAll {
				tag = ""
			}

			snapshots, err := newResticClient(cfg, deps).Snapshots(cmd.Context(), tag)
			if err != nil {
				return err
			}

			for _, snapshot := range snapshots {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
					snapshot.ShortID,
					snapshot.Time.Format(time.RFC3339),
					snapshot.Hostname,
					strings.Join(snapshot.Paths, ","),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagAll, "all", false, "include snapshots not created by clawkeeper")

	return cmd
}
