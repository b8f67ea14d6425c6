package restic

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/openclaw/clawkeeper/internal/utils"
)

// Client drives the restic binary against a single repository. The
// repository string is an opaque locator built by the config layer.
type Client struct {
	Binary     string
	Repository string
	Env        []string
	Logger     *zap.SugaredLogger
}

// Marker restic prints when the snapshots call hits an uninitialized
// repository. Used to keep init idempotent: init runs only when a listing
// indicated the repository does not exist yet.
const uninitializedMarker = "Is there a repository at the following location?"

func (c *Client) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Env = append(cmd.Env, c.Env...)

	output, err := cmd.CombinedOutput()
	return string(output), err
}

// Init initializes the repository.
func (c *Client) Init(ctx context.Context) error {
	arguments := MakeInitArgs(c.Repository)

	output, err := c.run(ctx, arguments)
	if err != nil {
		c.Logger.Errorw("Restic init failed", "error", err, "output", output)
		return utils.EngineErrorf("restic init failed: %v, output: %s", err, output)
	}

	return nil
}

// EnsureInitialized probes the repository with a snapshots listing and
// initializes it only when the listing indicates it does not exist.
func (c *Client) EnsureInitialized(ctx context.Context) error {
	arguments := MakeSnapshotsArgs(c.Repository, "")

	output, err := c.run(ctx, arguments)
	if err == nil {
		return nil
	}
	if !strings.Contains(output, uninitializedMarker) {
		c.Logger.Errorw("Restic snapshots probe failed", "error", err, "output", output)
		return utils.EngineErrorf("restic snapshots probe failed: %v, output: %s", err, output)
	}

	c.Logger.Infow("Repository not initialized yet, running init", "repository", c.Repository)
	return c.Init(ctx)
}

// Snapshots lists snapshots in the repository, optionally filtered by tag.
func (c *Client) Snapshots(ctx context.Context, tag string) ([]Snapshot, error) {
	arguments := MakeSnapshotsArgs(c.Repository, tag)

	output, err := c.run(ctx, arguments)
	if err != nil {
		c.Logger.Errorw("Restic snapshots failed", "error", err, "output", output)
		return nil, utils.EngineErrorf("restic snapshots failed: %v, output: %s", err, output)
	}

	snapshots, err := ParseSnapshots(output)
	if err != nil {
		return nil, utils.EngineErrorf("parse restic snapshots output: %v", err)
	}

	return snapshots, nil
}

// Backup creates a snapshot of path with the given host and tags.
func (c *Client) Backup(ctx context.Context, path, host string, tags []string) error {
	arguments := MakeBackupArgs(c.Repository, path, host, tags)

	output, err := c.run(ctx, arguments)
	if err != nil {
		c.Logger.Errorw("Restic backup failed", "error", err, "path", path, "output", output)
		return utils.EngineErrorf("restic backup of %s failed: %v, output: %s", path, err, output)
	}

	return nil
}

// Materialize restores exactly the includeFilter subtree of snapshotRef into
// targetPath. Satisfies the staging controller's engine contract.
func (c *Client) Materialize(ctx context.Context, snapshotRef, includeFilter, targetPath string) error {
	arguments := MakeRestoreArgs(c.Repository, snapshotRef, includeFilter, targetPath)

	output, err := c.run(ctx, arguments)
	if err != nil {
		c.Logger.Errorw("Restic restore failed", "error", err, "snapshot", snapshotRef, "output", output)
		return utils.EngineErrorf("restic restore of %s failed: %v, output: %s", snapshotRef, err, output)
	}

	return nil
}

// Forget applies the retention policy to snapshots matching tag and prunes
// unreferenced data.
func (c *Client) Forget(ctx context.Context, tag string, policy RetentionPolicy) error {
	if policy.IsZero() {
		return fmt.Errorf("refusing forget with an empty retention policy")
	}

	arguments := MakeForgetArgs(c.Repository, tag, policy)

	output, err := c.run(ctx, arguments)
	if err != nil {
		c.Logger.Errorw("Restic forget failed", "error", err, "output", output)
		return utils.EngineErrorf("restic forget failed: %v, output: %s", err, output)
	}

	return nil
}
