package engine

import (
	"errors"

	"github.com/ayoisaiah/podium/internal/apperr"
)

// Error kinds. Every error returned by this package and by the debate
// manager matches exactly one of them under errors.Is.
var (
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrOutOfRange        = errors.New("out of range")
	ErrInconsistentState = errors.New("inconsistent state")
)

var (
	errLoadWhileRunning = &apperr.Error{
		Message: "cannot load %q while the timer is running",
		Cause:   ErrInvalidOperation,
	}

	errRestoreWhileRunning = &apperr.Error{
		Message: "cannot restore state while the timer is running",
		Cause:   ErrInvalidOperation,
	}

	errNothingLoaded = &apperr.Error{
		Message: "no segment is loaded",
		Cause:   ErrInvalidOperation,
	}

	errUnknownRunState = &apperr.Error{
		Message: "unknown run state %q, using %s",
		Cause:   ErrInconsistentState,
	}

	errStartedWithTime = &apperr.Error{
		Message: "run state %s does not match elapsed time %d, using %s",
		Cause:   ErrInconsistentState,
	}
)
