package redeploy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/openclaw/clawkeeper/internal/constants"
	"github.com/openclaw/clawkeeper/internal/coolify"
	"github.com/openclaw/clawkeeper/internal/utils"
)

func writeVersionFile(t *testing.T, version string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VERSION")
	if err := os.WriteFile(path, []byte(version+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q}`, tag)
	}))
	t.Cleanup(server.Close)
	return server
}

func deployServer(t *testing.T, triggered *int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*triggered++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func newDeps() *utils.Dependencies {
	return &utils.Dependencies{Logger: zap.NewNop().Sugar()}
}

func TestRunDeploysWhenBehind(t *testing.T) {
	triggered := 0
	deploy := deployServer(t, &triggered)
	releases := releaseServer(t, "v1.2.4")

	err := Run(context.Background(), newDeps(), Params{
		Coolify:     coolify.NewClient(deploy.URL, "token", zap.NewNop().Sugar()),
		HTTPClient:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
		ReleaseURL:  releases.URL,
		VersionFile: writeVersionFile(t, "v1.2.3"),
		ResourceID:  "abc-123",
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if triggered != 1 {
		t.Errorf("deploy triggered %d times, expected 1", triggered)
	}
}

func TestRunSkipsWhenCurrent(t *testing.T) {
	triggered := 0
	deploy := deployServer(t, &triggered)
	releases := releaseServer(t, "v1.2.3")

	err := Run(context.Background(), newDeps(), Params{
		Coolify:     coolify.NewClient(deploy.URL, "token", zap.NewNop().Sugar()),
		HTTPClient:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
		ReleaseURL:  releases.URL,
		VersionFile: writeVersionFile(t, "v1.2.3"),
		ResourceID:  "abc-123",
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if triggered != 0 {
		t.Errorf("deploy triggered %d times, expected 0", triggered)
	}
}

func TestRunForceBypassesComparison(t *testing.T) {
	triggered := 0
	deploy := deployServer(t, &triggered)
	releases := releaseServer(t, "v1.0.0")

	err := Run(context.Background(), newDeps(), Params{
		Coolify:     coolify.NewClient(deploy.URL, "token", zap.NewNop().Sugar()),
		HTTPClient:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
		ReleaseURL:  releases.URL,
		VersionFile: writeVersionFile(t, "v1.0.0"),
		ResourceID:  "abc-123",
		Force:       true,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if triggered != 1 {
		t.Errorf("deploy triggered %d times, expected 1 with force", triggered)
	}
}

func TestRunDeploysWhenCurrentUnknown(t *testing.T) {
	triggered := 0
	deploy := deployServer(t, &triggered)
	releases := releaseServer(t, "v2.0.0")

	err := Run(context.Background(), newDeps(), Params{
		Coolify:     coolify.NewClient(deploy.URL, "token", zap.NewNop().Sugar()),
		HTTPClient:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
		ReleaseURL:  releases.URL,
		VersionFile: filepath.Join(t.TempDir(), "missing-VERSION"),
		ResourceID:  "abc-123",
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if triggered != 1 {
		t.Errorf("deploy triggered %d times, expected 1 when current is unknown", triggered)
	}
}

func TestRunFatalWhenLatestUnresolvable(t *testing.T) {
	triggered := 0
	deploy := deployServer(t, &triggered)
	releases := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer releases.Close()

	err := Run(context.Background(), newDeps(), Params{
		Coolify:     coolify.NewClient(deploy.URL, "token", zap.NewNop().Sugar()),
		HTTPClient:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
		ReleaseURL:  releases.URL,
		VersionFile: writeVersionFile(t, "v1.0.0"),
		ResourceID:  "abc-123",
		Force:       true,
	})
	if !errors.Is(err, utils.ErrEngine) {
		t.Fatalf("Run() error = %v, expected engine failure class", err)
	}
	if triggered != 0 {
		t.Errorf("deploy triggered %d times despite fatal lookup failure", triggered)
	}
}
