package engine

import "strings"

// RunState is the state of the timer engine.
type RunState int

const (
	NotStarted RunState = iota
	Running
	StoppedByUser
	StoppedByBell
)

var runStateNames = map[RunState]string{
	NotStarted:    "not_started",
	Running:       "running",
	StoppedByUser: "stopped_by_user",
	StoppedByBell: "stopped_by_bell",
}

func (s RunState) String() string {
	if name, ok := runStateNames[s]; ok {
		return name
	}

	return "unknown"
}

// Stopped reports whether the timer is paused, by the user or by a bell.
func (s RunState) Stopped() bool {
	return s == StoppedByUser || s == StoppedByBell
}

// ParseRunState is the inverse of RunState.String. Matching ignores case.
func ParseRunState(str string) (RunState, bool) {
	str = strings.ToLower(strings.TrimSpace(str))

	for state, name := range runStateNames {
		if name == str {
			return state, true
		}
	}

	return NotStarted, false
}

// stoppedStateFor is the state a paused timer takes for the given elapsed
// time once the user has intervened.
func stoppedStateFor(elapsed uint64) RunState {
	if elapsed == 0 {
		return NotStarted
	}

	return StoppedByUser
}
