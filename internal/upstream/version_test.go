package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/openclaw/clawkeeper/internal/utils"
)

func TestLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v2.10.2","name":"OpenClaw 2.10.2"}`))
	}))
	defer server.Close()

	got, err := LatestVersion(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("LatestVersion() error: %v", err)
	}
	if got != "v2.10.2" {
		t.Errorf("LatestVersion() = %q, expected v2.10.2", got)
	}
}

func TestLatestVersionFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty tag_name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"tag_name":""}`))
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "no such repo", http.StatusNotFound)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>rate limited</html>`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			_, err := LatestVersion(context.Background(), server.Client(), server.URL)
			if !errors.Is(err, utils.ErrEngine) {
				t.Errorf("LatestVersion() error = %v, expected engine failure class", err)
			}
		})
	}
}

func TestCurrentVersion(t *testing.T) {
	dir := t.TempDir()
	versionFile := filepath.Join(dir, "VERSION")

	if got := CurrentVersion(versionFile); got != "" {
		t.Errorf("CurrentVersion() with missing file = %q, expected empty", got)
	}

	if err := os.WriteFile(versionFile, []byte("v1.4.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := CurrentVersion(versionFile); got != "v1.4.2" {
		t.Errorf("CurrentVersion() = %q, expected v1.4.2", got)
	}
}
