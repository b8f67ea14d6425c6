package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/coolify"
	"github.com/openclaw/clawkeeper/internal/logic/redeploy"
)

func newRedeployCmd() *cobra.Command {
	var flagForce bool

	cmd := &cobra.Command{
		Use:   "redeploy",
		Short: "Trigger a Coolify redeploy when a newer OpenClaw release exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, deps, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.ValidateRedeploy(); err != nil {
				return err
			}

			return redeploy.Run(cmd.Context(), deps, redeploy.Params{
				Coolify:     coolify.NewClient(cfg.CoolifyURL, cfg.CoolifyToken, deps.Logger),
				HTTPClient:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
				ReleaseURL:  cfg.ReleaseURL,
				VersionFile: cfg.VersionFile,
				ResourceID:  cfg.CoolifyResourceID,
				Force:       flagForce,
			})
		},
	}

	cmd.Flags().BoolVar(&flagForce, "force", false, "deploy regardless of version comparison")

	return cmd
}
