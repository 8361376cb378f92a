package debate

import (
	"github.com/ayoisaiah/podium/internal/apperr"
	"github.com/ayoisaiah/podium/internal/engine"
)

var (
	errPositionOutOfRange = &apperr.Error{
		Message: "position %d is out of range (0 to %d)",
		Cause:   engine.ErrOutOfRange,
	}

	errSavedPosition = &apperr.Error{
		Message: "saved position %d is out of range, starting from the first segment",
		Cause:   engine.ErrInconsistentState,
	}

	errSavedSegmentTimes = &apperr.Error{
		Message: "saved state has %d segment times but the debate has %d segments",
		Cause:   engine.ErrInconsistentState,
	}
)
