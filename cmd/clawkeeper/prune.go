package main

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/constants"
)

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Apply the retention policy and prune unreferenced data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateRepository(); err != nil {
				return err
			}

			return newResticClient(cfg, deps).Forget(cmd.Context(), constants.ManagedByTag, cfg.Retention)
		},
	}
}
