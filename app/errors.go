package app

import "github.com/ayoisaiah/podium/internal/apperr"

var (
	errNoFormats = &apperr.Error{
		Message: "no debate formats were found in %s",
	}
	errNoSavedDebate = &apperr.Error{
		Message: "there is no saved debate to resume",
	}
	errFormatInvalid = &apperr.Error{
		Message: "the format file %s could not be loaded",
	}
	errFormatArg = &apperr.Error{
		Message: "expected the name of a format file",
	}
)
