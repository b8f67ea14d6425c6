// Package release decides whether a redeploy should fire given the
// installed and latest upstream version strings.
package release

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// VersionTriple is the comparable major.minor.patch form of a release tag.
// Missing or non-numeric components coerce to 0; components past the third
// are ignored.
type VersionTriple struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion extracts a VersionTriple from a version string. A leading
// "v" and any pre-release/build suffix (everything from the first byte that
// is neither a digit nor a dot) are stripped before extraction. The second
// return value is false when the string yields no numeric content at all.
func ParseVersion(s string) (VersionTriple, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")

	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			s = s[:i]
			break
		}
	}
	if s == "" {
		return VersionTriple{}, false
	}

	var triple VersionTriple
	parsed := false
	for i, part := range strings.SplitN(s, ".", 4) {
		if i > 2 {
			break
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			n = 0
		} else {
			parsed = true
		}
		switch i {
		case 0:
			triple.Major = n
		case 1:
			triple.Minor = n
		case 2:
			triple.Patch = n
		}
	}

	return triple, parsed
}

// Less reports whether v is strictly older than other, comparing major
// first, then minor, then patch.
func (v VersionTriple) Less(other VersionTriple) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// ShouldDeploy reports whether a redeploy should fire. force bypasses the
// comparison entirely. An unknown current version deploys, preferring action
// over silence; the warning makes that explicit.
func ShouldDeploy(logger *zap.SugaredLogger, current, latest string, force bool) bool {
	if force {
		logger.Infow("Force flag set, bypassing version comparison", "latest", latest)
		return true
	}

	currentTriple, ok := ParseVersion(current)
	if !ok {
		logger.Warnw("Current version unknown or unparseable, deploying", "current", current, "latest", latest)
		return true
	}

	latestTriple, _ := ParseVersion(latest)
	return currentTriple.Less(latestTriple)
}
