package utils

import (
	"errors"
	"fmt"

	"github.com/openclaw/clawkeeper/internal/constants"
)

// Error classes. Everything below the CLI wraps one of these so errors.Is
// can recover the class at the process boundary.
var (
	// ErrConfiguration marks a missing or invalid required parameter,
	// detected eagerly before any side-effecting call.
	ErrConfiguration = errors.New("configuration error")

	// ErrPrecondition marks a policy-triggered abort, e.g. a non-empty
	// restore destination in safe mode. Never auto-retried.
	ErrPrecondition = errors.New("precondition violation")

	// ErrEngine marks a failed external call (snapshot engine, deploy
	// trigger, release metadata endpoint).
	ErrEngine = errors.New("engine failure")

	// ErrLayout marks an engine call that succeeded but produced an
	// unexpected content shape. Signals contract drift between the caller's
	// expected paths and the snapshot's actual structure.
	ErrLayout = errors.New("layout mismatch")
)

func ConfigurationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func PreconditionErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func EngineErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEngine, fmt.Sprintf(format, args...))
}

func LayoutErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLayout, fmt.Sprintf(format, args...))
}

// ExitCodeFor maps an error to the process exit code, preserving the
// three-way distinction between configuration errors, operational failures
// and policy aborts.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return constants.ExitOK
	case errors.Is(err, ErrConfiguration):
		return constants.ExitConfiguration
	case errors.Is(err, ErrPrecondition):
		return constants.ExitPrecondition
	default:
		return constants.ExitOperational
	}
}
