package restore

import (
	"errors"
	"reflect"
	"testing"

	"github.com/openclaw/clawkeeper/internal/staging"
	"github.com/openclaw/clawkeeper/internal/utils"
)

func TestParseTargets(t *testing.T) {
	testCases := []struct {
		name     string
		mappings []string
		expected []staging.Target
		wantErr  bool
	}{
		{
			name:     "explicit mapping",
			mappings: []string{"/data/openclaw:/mnt/restore/openclaw"},
			expected: []staging.Target{{Destination: "/mnt/restore/openclaw", IncludeFilter: "/data/openclaw"}},
		},
		{
			name:     "bare path restores in place",
			mappings: []string{"/data/openclaw"},
			expected: []staging.Target{{Destination: "/data/openclaw", IncludeFilter: "/data/openclaw"}},
		},
		{
			name:     "multiple targets keep order",
			mappings: []string{"/data/openclaw:/mnt/a", "/data/openclaw-media:/mnt/b"},
			expected: []staging.Target{
				{Destination: "/mnt/a", IncludeFilter: "/data/openclaw"},
				{Destination: "/mnt/b", IncludeFilter: "/data/openclaw-media"},
			},
		},
		{
			name:     "blank entries skipped",
			mappings: []string{"", "  ", "/data/openclaw"},
			expected: []staging.Target{{Destination: "/data/openclaw", IncludeFilter: "/data/openclaw"}},
		},
		{name: "empty destination", mappings: []string{"/data/openclaw:"}, wantErr: true},
		{name: "empty source", mappings: []string{":/mnt/a"}, wantErr: true},
		{name: "nothing at all", mappings: nil, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			targets, err := ParseTargets(tc.mappings)
			if tc.wantErr {
				if !errors.Is(err, utils.ErrConfiguration) {
					t.Errorf("ParseTargets() error = %v, expected configuration class", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTargets() error: %v", err)
			}
			if !reflect.DeepEqual(targets, tc.expected) {
				t.Errorf("ParseTargets() = %v, expected %v", targets, tc.expected)
			}
		})
	}
}
