package engine

import (
	"time"

	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/period"
)

// TickSource delivers the one-second tick that advances a running engine.
// After Cancel returns no previously armed callback may be started.
type TickSource interface {
	Arm(interval time.Duration, fn func())
	Cancel()
}

// Alerter receives the side effects of the engine: sounds, notifications
// and attention requests.
type Alerter interface {
	// MakeActive is called when a segment starts running.
	MakeActive(name string, info period.Info)
	// MakeInactive is called when the user stops the timer.
	MakeInactive()
	PlayBell(sound format.Sound)
	// AttractAttention is called when a bell pauses the timer.
	AttractAttention()
	POIExpired()
}

// NopAlerter discards every alert.
type NopAlerter struct{}

func (NopAlerter) MakeActive(string, period.Info) {}

func (NopAlerter) MakeInactive() {}

func (NopAlerter) PlayBell(format.Sound) {}

func (NopAlerter) AttractAttention() {}

func (NopAlerter) POIExpired() {}
