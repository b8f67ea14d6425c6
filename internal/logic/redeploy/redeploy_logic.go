package redeploy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openclaw/clawkeeper/internal/coolify"
	"github.com/openclaw/clawkeeper/internal/release"
	"github.com/openclaw/clawkeeper/internal/upstream"
	"github.com/openclaw/clawkeeper/internal/utils"
)

type Params struct {
	Coolify     *coolify.Client
	HTTPClient  *http.Client
	ReleaseURL  string
	VersionFile string
	ResourceID  string
	Force       bool
}

// Run resolves the installed and latest upstream versions, gates on the
// comparator and triggers a Coolify deployment when the gate opens. A
// failed latest-version lookup is fatal before the comparator is ever
// consulted.
func Run(ctx context.Context, deps *utils.Dependencies, params Params) error {
	log := deps.Logger.Named("redeploy")

	latest, err := upstream.LatestVersion(ctx, params.HTTPClient, params.ReleaseURL)
	if err != nil {
		return fmt.Errorf("resolve latest version: %w", err)
	}

	current := upstream.CurrentVersion(params.VersionFile)
	log.Infow("Resolved versions", "current", current, "latest", latest)

	if !release.ShouldDeploy(log, current, latest, params.Force) {
		log.Infow("Installed version is current, not deploying")
		return nil
	}

	return params.Coolify.TriggerDeploy(ctx, params.ResourceID, params.Force)
}
