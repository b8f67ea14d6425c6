package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openclaw/clawkeeper/internal/constants"
)

func TestExitCodeFor(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: constants.ExitOK},
		{name: "configuration error", err: ConfigurationErrorf("missing %s", "RESTIC_PASSWORD"), expected: constants.ExitConfiguration},
		{name: "precondition violation", err: PreconditionErrorf("destination not empty"), expected: constants.ExitPrecondition},
		{name: "engine failure", err: EngineErrorf("restic exited 1"), expected: constants.ExitOperational},
		{name: "layout mismatch", err: LayoutErrorf("missing subtree"), expected: constants.ExitOperational},
		{name: "plain error", err: errors.New("boom"), expected: constants.ExitOperational},
		{name: "wrapped precondition", err: fmt.Errorf("restore: %w", PreconditionErrorf("destination not empty")), expected: constants.ExitPrecondition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCodeFor(tc.err); got != tc.expected {
				t.Errorf("ExitCodeFor() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestErrorClassesAreDistinct(t *testing.T) {
	if errors.Is(ConfigurationErrorf("x"), ErrPrecondition) {
		t.Error("configuration error must not match precondition class")
	}
	if errors.Is(EngineErrorf("x"), ErrLayout) {
		t.Error("engine failure must not match layout class")
	}
}
