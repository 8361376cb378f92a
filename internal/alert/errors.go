package alert

import (
	"errors"

	"github.com/ayoisaiah/podium/internal/apperr"
)

var (
	errInvalidSoundFormat = &apperr.Error{
		Message: "unsupported bell sound %q: use an ogg, mp3, flac or wav file",
	}
	errReadSound = &apperr.Error{
		Message: "unable to read bell sound %q",
	}
	errBellCmd = &apperr.Error{
		Message: "unable to parse bell_cmd option",
	}
	errEmptyBellCmd = errors.New("bell_cmd is empty")
)
