package engine

import "sync"

// DefaultPOILength is the usual time given for a point of information.
const DefaultPOILength = 15

// POITimer counts down the time allowed for a point of information. It runs
// on its own tick source, independently of the segment timer.
type POITimer struct {
	ticks     TickSource
	alerter   Alerter
	broadcast func()
	length    uint64
	remaining uint64
	gen       uint64
	mu        sync.Mutex
	running   bool
}

// NewPOITimer returns a stopped countdown of length seconds. The broadcast
// hook may be nil.
func NewPOITimer(
	ticks TickSource,
	alerter Alerter,
	length uint64,
	broadcast func(),
) *POITimer {
	if alerter == nil {
		alerter = NopAlerter{}
	}

	if length == 0 {
		length = DefaultPOILength
	}

	return &POITimer{
		ticks:     ticks,
		alerter:   alerter,
		length:    length,
		broadcast: broadcast,
	}
}

// Start restarts the countdown from the full length.
func (p *POITimer) Start() {
	p.mu.Lock()

	p.gen++
	gen := p.gen
	p.remaining = p.length
	p.running = true

	p.ticks.Arm(TickInterval, func() {
		p.tick(gen)
	})

	p.mu.Unlock()

	p.notify()
}

func (p *POITimer) tick(gen uint64) {
	var expired bool

	p.mu.Lock()

	if gen != p.gen || !p.running {
		p.mu.Unlock()
		return
	}

	// the countdown stays at zero for one tick so that it can be seen
	if p.remaining == 0 {
		p.stopLocked()
	} else {
		p.remaining--
		expired = p.remaining == 0
	}

	p.mu.Unlock()

	if expired {
		p.alerter.POIExpired()
	}

	p.notify()
}

// Stop cancels the countdown.
func (p *POITimer) Stop() {
	p.mu.Lock()
	wasRunning := p.running
	p.stopLocked()
	p.mu.Unlock()

	if wasRunning {
		p.notify()
	}
}

func (p *POITimer) stopLocked() {
	p.gen++
	p.ticks.Cancel()
	p.running = false
}

// Remaining returns the seconds left while the countdown is running.
func (p *POITimer) Remaining() (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.remaining, p.running
}

// Running reports whether a countdown is in progress.
func (p *POITimer) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running
}

func (p *POITimer) notify() {
	if p.broadcast != nil {
		p.broadcast()
	}
}
