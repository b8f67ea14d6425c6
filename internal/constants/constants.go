package constants

import "time"

const (
	// EngineBinary is the snapshot engine executable looked up on PATH.
	EngineBinary = "restic"

	// SnapshotLatest is the sentinel accepted wherever a snapshot reference
	// is expected.
	SnapshotLatest = "latest"

	// StagingPrefix names staging directories created inside a restore
	// destination. A unique suffix is appended per invocation.
	StagingPrefix = ".clawkeeper-staging-"

	// ManagedByTag is attached to every snapshot created by this tool so
	// listing and retention only ever touch our own snapshots.
	ManagedByTag = "managed-by=clawkeeper"
)

const (
	DefaultHTTPTimeout = 30 * time.Second
)

// Process exit codes. Configuration errors, operational failures and
// policy-triggered aborts must stay distinguishable for the external
// scheduler.
const (
	ExitOK            = 0
	ExitOperational   = 1
	ExitConfiguration = 2
	ExitPrecondition  = 3
)
