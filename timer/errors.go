package timer

import "github.com/ayoisaiah/podium/internal/apperr"

var (
	errWriteStatus = &apperr.Error{
		Message: "unable to write the status file",
	}
	errReadStatus = &apperr.Error{
		Message: "unable to read the status file",
	}
	errPersist = &apperr.Error{
		Message: "unable to save the debate",
	}
)
