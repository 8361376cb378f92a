package format

import "github.com/ayoisaiah/podium/internal/apperr"

var (
	// ErrDuplicateBell is returned when two bells in a segment share an offset.
	ErrDuplicateBell = &apperr.Error{
		Message: "a bell at %s is already defined in this segment",
	}

	errNoSpeeches = &apperr.Error{
		Message: "a debate needs at least one speech",
	}

	errNotPrep = &apperr.Error{
		Message: "prep time segment has kind %q",
	}

	errPrepAsSpeech = &apperr.Error{
		Message: "speech %q uses a prep time segment",
	}

	errNilSegment = &apperr.Error{
		Message: "speech %q has no segment",
	}

	errUnknownPrepBellType = &apperr.Error{
		Message: "unknown prep bell type %q (expected start, finish or proportional)",
	}

	errInvalidProportion = &apperr.Error{
		Message: "prep bell proportion must be between 0 and 1, got %v",
	}
)
