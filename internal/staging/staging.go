package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/utils"
)

// Mode governs precondition checking and destination-clearing behavior.
type Mode string

const (
	// ModeSafe requires the destination to have zero direct children before
	// any data movement.
	ModeSafe Mode = "safe"

	// ModeOverwrite schedules the destination's prior content for removal
	// once restorable content has been confirmed.
	ModeOverwrite Mode = "overwrite"
)

// ParseMode maps a user-supplied mode string onto a Mode. Empty defaults to
// safe.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeSafe):
		return ModeSafe, nil
	case string(ModeOverwrite):
		return ModeOverwrite, nil
	default:
		return "", utils.ConfigurationErrorf("unknown restore mode %q (want safe or overwrite)", s)
	}
}

// Failure reasons. Each wraps its error class so the process boundary can
// map it to an exit code with errors.Is.
var (
	ErrDestinationNotEmpty      = fmt.Errorf("%w: destination not empty", utils.ErrPrecondition)
	ErrRestoreEngineFailure     = fmt.Errorf("%w: snapshot restore failed", utils.ErrEngine)
	ErrUnexpectedSnapshotLayout = fmt.Errorf("%w: unexpected snapshot layout", utils.ErrLayout)
)

// Engine materializes exactly the includeFilter subtree of a snapshot into
// targetPath. Implemented by the restic client; tests substitute a fake.
type Engine interface {
	Materialize(ctx context.Context, snapshotRef, includeFilter, targetPath string) error
}

// Target pairs a writable destination with the snapshot subtree that
// populates it.
type Target struct {
	// Destination is an existing, writable directory.
	Destination string

	// IncludeFilter is the subtree path as recorded in the snapshot.
	IncludeFilter string
}

// Controller stages restored snapshot content and applies it to live
// destinations. Stateless between calls; concurrent restores of the same
// destination are the external scheduler's problem to prevent.
type Controller struct {
	Engine Engine
	Logger *zap.SugaredLogger
}

func NewController(engine Engine, logger *zap.SugaredLogger) *Controller {
	return &Controller{Engine: engine, Logger: logger.Named("staging")}
}

// Restore materializes target.IncludeFilter from snapshotRef into a staging
// area inside the destination, then merges it into the destination.
//
// Safe mode refuses a destination with any direct child. The emptiness check
// deliberately inspects direct children only, not nested content.
//
// Overwrite mode is a clear-then-copy, not an atomic swap: a failure between
// clearing and copying leaves the destination partially cleared. The staging
// area is removed on every return path reachable after its creation.
func (c *Controller) Restore(ctx context.Context, target Target, snapshotRef string, mode Mode) (err error) {
	log := c.Logger.With("destination", target.Destination, "snapshot", snapshotRef, "mode", mode)

	info, statErr := os.Stat(target.Destination)
	if statErr != nil {
		return utils.PreconditionErrorf("destination %s is not accessible: %v", target.Destination, statErr)
	}
	if !info.IsDir() {
		return utils.PreconditionErrorf("destination %s is not a directory", target.Destination)
	}

	entries, readErr := os.ReadDir(target.Destination)
	if readErr != nil {
		return utils.PreconditionErrorf("destination %s is not readable: %v", target.Destination, readErr)
	}
	if mode == ModeSafe && len(entries) > 0 {
		return fmt.Errorf("%w: %s has %d entries, refusing restore in safe mode", ErrDestinationNotEmpty, target.Destination, len(entries))
	}

	stagingDir := filepath.Join(target.Destination, constants.StagingPrefix+uuid.NewString())
	if mkErr := os.Mkdir(stagingDir, 0o700); mkErr != nil {
		return fmt.Errorf("create staging area: %w", mkErr)
	}
	log.Debugw("Created staging area", "staging", stagingDir)

	defer func() {
		if rmErr := os.RemoveAll(stagingDir); rmErr != nil {
			err = multierr.Append(err, fmt.Errorf("remove staging area %s: %w", stagingDir, rmErr))
		}
	}()

	if engineErr := c.Engine.Materialize(ctx, snapshotRef, target.IncludeFilter, stagingDir); engineErr != nil {
		return fmt.Errorf("%w: %v", ErrRestoreEngineFailure, engineErr)
	}

	restored := filepath.Join(stagingDir, filepath.FromSlash(strings.TrimPrefix(target.IncludeFilter, "/")))
	restoredInfo, statErr := os.Stat(restored)
	if statErr != nil || !restoredInfo.IsDir() {
		return fmt.Errorf("%w: %s missing from snapshot %s", ErrUnexpectedSnapshotLayout, target.IncludeFilter, snapshotRef)
	}

	if mode == ModeOverwrite {
		// Destructive and not reversible. Runs strictly after the restored
		// subtree was confirmed above.
		if clearErr := clearExcept(target.Destination, filepath.Base(stagingDir)); clearErr != nil {
			return fmt.Errorf("clear destination %s: %w", target.Destination, clearErr)
		}
		log.Infow("Cleared prior destination content")
	}

	if copyErr := copyTree(restored, target.Destination); copyErr != nil {
		return fmt.Errorf("apply restored content to %s: %w", target.Destination, copyErr)
	}

	log.Infow("Restore applied")
	return nil
}

// RestoreAll processes each target independently and sequentially. A failure
// aborts the run; targets already applied are not rolled back, and the
// returned error names the destination that failed.
func (c *Controller) RestoreAll(ctx context.Context, targets []Target, snapshotRef string, mode Mode) error {
	for _, target := range targets {
		if err := c.Restore(ctx, target, snapshotRef, mode); err != nil {
			return fmt.Errorf("restore of %s: %w", target.Destination, err)
		}
	}
	return nil
}

// clearExcept removes every direct child of dir except keep.
func clearExcept(dir, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Name() == keep {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
