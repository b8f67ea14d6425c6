package restic

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/utils"
)

// RetentionPolicy holds the keep counts applied by Forget.
type RetentionPolicy struct {
	KeepDaily   int
	KeepWeekly  int
	KeepMonthly int
}

func (p RetentionPolicy) IsZero() bool {
	return p.KeepDaily == 0 && p.KeepWeekly == 0 && p.KeepMonthly == 0
}

// Snapshot is the subset of restic's snapshot JSON this tool reads.
type Snapshot struct {
	ID       string    `json:"id"`
	ShortID  string    `json:"short_id"`
	Time     time.Time `json:"time"`
	Hostname string    `json:"hostname"`
	Paths    []string  `json:"paths"`
	Tags     []string  `json:"tags"`
}

// Spellings accepted wherever a snapshot reference is expected. All of them
// resolve to the engine's "latest" sentinel.
var LatestAcceptableValues = []string{constants.SnapshotLatest, "true", "now", ""}

// NormalizeSnapshotRef maps the accepted "latest" spellings onto the
// engine's sentinel and passes anything else through as a snapshot ID.
func NormalizeSnapshotRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if utils.Contains(LatestAcceptableValues, ref) {
		return constants.SnapshotLatest
	}
	return ref
}

func MakeInitArgs(repository string) []string {
	return []string{"init", fmt.Sprintf("--repo=%s", repository)}
}

func MakeSnapshotsArgs(repository, tag string) []string {
	arguments := []string{"snapshots", fmt.Sprintf("--repo=%s", repository), "--json"}
	if tag != "" {
		arguments = append(arguments, "--tag", tag)
	}
	return arguments
}

func MakeBackupArgs(repository, path, host string, tags []string) []string {
	arguments := []string{"backup", fmt.Sprintf("--repo=%s", repository)}
	if host != "" {
		arguments = append(arguments, fmt.Sprintf("--host=%s", host))
	}
	for _, tag := range tags {
		arguments = append(arguments, "--tag", tag)
	}
	arguments = append(arguments, path) // restic expects the source path as a positional arg
	return arguments
}

func MakeRestoreArgs(repository, snapshotRef, includeFilter, targetPath string) []string {
	arguments := []string{"restore", fmt.Sprintf("--repo=%s", repository)}
	arguments = append(arguments, NormalizeSnapshotRef(snapshotRef))
	if includeFilter != "" {
		arguments = append(arguments, "--include", ensureLeadingSlash(includeFilter))
	}
	arguments = append(arguments, "--target", targetPath)
	return arguments
}

func MakeForgetArgs(repository, tag string, policy RetentionPolicy) []string {
	arguments := []string{"forget", fmt.Sprintf("--repo=%s", repository)}
	if tag != "" {
		arguments = append(arguments, "--tag", tag)
	}
	if policy.KeepDaily > 0 {
		arguments = append(arguments, "--keep-daily", fmt.Sprintf("%d", policy.KeepDaily))
	}
	if policy.KeepWeekly > 0 {
		arguments = append(arguments, "--keep-weekly", fmt.Sprintf("%d", policy.KeepWeekly))
	}
	if policy.KeepMonthly > 0 {
		arguments = append(arguments, "--keep-monthly", fmt.Sprintf("%d", policy.KeepMonthly))
	}
	arguments = append(arguments, "--prune")
	return arguments
}

// ParseSnapshots decodes restic's `snapshots --json` output.
func ParseSnapshots(output string) ([]Snapshot, error) {
	output = strings.TrimSpace(output)
	if output == "" || output == "null" {
		return nil, nil
	}

	var snapshots []Snapshot
	if err := json.Unmarshal([]byte(output), &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
