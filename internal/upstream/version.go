// Package upstream resolves the installed and latest OpenClaw versions.
package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/openclaw/clawkeeper/internal/utils"
)

// releaseMetadata is the slice of the release endpoint's JSON we read.
type releaseMetadata struct {
	TagName string `json:"tag_name"`
}

// LatestVersion fetches the latest release tag from the release-metadata
// endpoint. An unresolvable latest version is fatal to the whole redeploy
// decision, so every failure path returns an error.
func LatestVersion(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", utils.EngineErrorf("build release metadata request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", utils.EngineErrorf("fetch release metadata: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", utils.EngineErrorf("release metadata endpoint returned %d", resp.StatusCode)
	}

	var meta releaseMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", utils.EngineErrorf("decode release metadata: %v", err)
	}

	tag := strings.TrimSpace(meta.TagName)
	if tag == "" {
		return "", utils.EngineErrorf("release metadata has no tag_name")
	}
	return tag, nil
}

// CurrentVersion reads the installed version from the version file. An
// absent or unreadable file means the current version is simply unknown,
// which the comparator treats as a reason to deploy, so no error is
// returned.
func CurrentVersion(versionFile string) string {
	content, err := os.ReadFile(versionFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
