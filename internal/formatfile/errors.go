package formatfile

import "github.com/ayoisaiah/podium/internal/apperr"

var (
	errParse = &apperr.Error{
		Message: "unable to parse format file %s",
	}
	errNoName = &apperr.Error{
		Message: "the format has no name",
	}
	errDuplicateRef = &apperr.Error{
		Message: "%s %q is defined more than once",
	}
	errUnknownPeriod = &apperr.Error{
		Message: "period type %q is not defined",
	}
	errUnknownSpeechType = &apperr.Error{
		Message: "speech %q: speech type %q is not defined",
	}
	errNoLength = &apperr.Error{
		Message: "%s has no length",
	}
	errBellTime = &apperr.Error{
		Message: "%s: invalid bell time %q",
	}
	errBellAfterFinish = &apperr.Error{
		Message: "%s: the bell at %s rings after the finish at %s",
	}
	errInvalid = &apperr.Error{
		Message: "%s is invalid",
	}
	errFormatNotFound = &apperr.Error{
		Message: "format %q not found in %s",
	}
)
