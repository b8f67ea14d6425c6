package restore

import (
	"context"
	"strings"

	"github.com/openclaw/clawkeeper/internal/staging"
	"github.com/openclaw/clawkeeper/internal/utils"
)

type Params struct {
	Engine      staging.Engine
	Targets     []staging.Target
	SnapshotRef string
	Mode        staging.Mode
}

// Run applies the snapshot to every target, sequentially and without
// cross-target rollback.
func Run(ctx context.Context, deps *utils.Dependencies, params Params) error {
	ctrl := staging.NewController(params.Engine, deps.Logger)
	return ctrl.RestoreAll(ctx, params.Targets, params.SnapshotRef, params.Mode)
}

// ParseTargets converts mapping strings into staging targets. Each mapping
// is either "snapshotPath:destination" or a bare path restored in place.
func ParseTargets(mappings []string) ([]staging.Target, error) {
	var targets []staging.Target
	for _, mapping := range mappings {
		mapping = strings.TrimSpace(mapping)
		if mapping == "" {
			continue
		}

		source, destination, found := strings.Cut(mapping, ":")
		if !found {
			destination = source
		}
		if source == "" || destination == "" {
			return nil, utils.ConfigurationErrorf("invalid restore mapping %q (want snapshotPath:destination)", mapping)
		}
		targets = append(targets, staging.Target{Destination: destination, IncludeFilter: source})
	}

	if len(targets) == 0 {
		return nil, utils.ConfigurationErrorf("no restore targets given")
	}
	return targets, nil
}
