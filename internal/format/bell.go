package format

import (
	"time"

	"github.com/ayoisaiah/podium/internal/period"
)

// DefaultRepeatPeriod is the gap between consecutive bells of one sound.
const DefaultRepeatPeriod = 500 * time.Millisecond

// Sound describes how a bell should be played. It is passed through to the
// alert player untouched.
type Sound struct {
	// Resource is an optional sound file; empty selects the built-in bell
	Resource     string        `json:"resource,omitempty"`
	Bells        int           `json:"bells"`
	TimesToPlay  int           `json:"times_to_play"`
	RepeatPeriod time.Duration `json:"repeat_period"`
}

// NewSound returns a sound of n bells played once.
func NewSound(n int) Sound {
	return Sound{
		Bells:        n,
		TimesToPlay:  1,
		RepeatPeriod: DefaultRepeatPeriod,
	}
}

// Silent reports whether the sound rings no bells.
func (s Sound) Silent() bool {
	return s.Bells <= 0 || s.TimesToPlay <= 0
}

// Bell is a signal scheduled at a fixed offset into a segment.
type Bell struct {
	// NextPeriod is folded into the displayed period when the bell rings. The
	// zero value changes nothing.
	NextPeriod  period.Info
	Sound       Sound
	Offset      uint64
	PauseOnFire bool
}

// NewBell returns a bell of n rings at the given offset.
func NewBell(offset uint64, n int) Bell {
	return Bell{
		Offset: offset,
		Sound:  NewSound(n),
	}
}
