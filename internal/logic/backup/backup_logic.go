package backup

import (
	"context"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/restic"
	"github.com/openclaw/clawkeeper/internal/utils"
)

type Params struct {
	Client    *restic.Client
	Volumes   []string
	Host      string
	Tags      []string
	Retention restic.RetentionPolicy
}

// Run performs one full backup pass: repository probe (init only when the
// probe says the repository does not exist yet), one snapshot per volume,
// then retention enforcement over our own snapshots.
func Run(ctx context.Context, deps *utils.Dependencies, params Params) error {
	log := deps.Logger.Named("backup")

	if err := params.Client.EnsureInitialized(ctx); err != nil {
		return err
	}

	for _, volume := range params.Volumes {
		log.Infow("Backing up volume", "volume", volume, "host", params.Host)
		if err := params.Client.Backup(ctx, volume, params.Host, params.Tags); err != nil {
			return err
		}
	}

	if params.Retention.IsZero() {
		log.Debugw("No retention policy configured, skipping forget")
		return nil
	}

	log.Infow("Applying retention policy",
		"keepDaily", params.Retention.KeepDaily,
		"keepWeekly", params.Retention.KeepWeekly,
		"keepMonthly", params.Retention.KeepMonthly,
	)
	return params.Client.Forget(ctx, constants.ManagedByTag, params.Retention)
}
