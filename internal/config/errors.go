package config

import "github.com/ayoisaiah/podium/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidRange = &apperr.Error{
		Message: "%s must be between %v and %v, got %v",
	}

	errWholeSeconds = &apperr.Error{
		Message: "%s must be a whole number of seconds, got %v",
	}

	errInvalidPrepBell = &apperr.Error{
		Message: "prep bell %d is invalid",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errSoundNotFound = &apperr.Error{
		Message: "bell sound file not found: %s",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q: use debug, info, warn or error",
	}

	errInvalidCLITime = &apperr.Error{
		Message: "invalid %s time %q",
	}

	errTimeRange = &apperr.Error{
		Message: "the --since time (%s) must be before the --until time (%s)",
	}
)

var errPrompt = &apperr.Error{
	Message: "form interaction failed",
}
