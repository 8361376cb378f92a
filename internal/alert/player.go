// Package alert plays bells and shows desktop notifications on behalf of the
// timer engine.
package alert

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/period"
)

const appName = "Podium"

// Options controls which alerts are produced.
type Options struct {
	// BellFile replaces the built-in tone for sounds without a resource
	BellFile string
	// BellCmd is run every time a bell rings
	BellCmd string
	// Icon is shown with desktop notifications
	Icon          string
	Sound         bool
	Notifications bool
}

// Player implements engine.Alerter. Every alert is produced in the
// background so the engine is never held up by audio or notifications.
type Player struct {
	buffers map[string]*beep.Buffer
	notify  func(title, msg, icon string) error
	attract func(title, msg, icon string) error
	play    func(s beep.Streamer) error
	run     func(args []string, env []string) error
	opts    Options
	wg      sync.WaitGroup
	mu      sync.Mutex
	speaker sync.Once
	initErr error
	started bool
}

var _ engine.Alerter = (*Player)(nil)

// New returns a player that uses the system speaker and notification
// daemon.
func New(opts Options) *Player {
	p := &Player{
		opts:    opts,
		buffers: make(map[string]*beep.Buffer),
		notify:  beeep.Notify,
		attract: beeep.Alert,
		run:     runCmd,
	}

	p.play = p.speakerPlay

	return p
}

func (p *Player) speakerPlay(s beep.Streamer) error {
	p.speaker.Do(func() {
		bufferSize := 10
		p.initErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Second/time.Duration(bufferSize)),
		)
		p.started = p.initErr == nil
	})

	if p.initErr != nil {
		return p.initErr
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}

func runCmd(args, env []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(), env...)

	return cmd.Run()
}

func (p *Player) background(fn func()) {
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		fn()
	}()
}

// buffer returns the decoded audio for a resource, decoding it on first
// use. The empty resource is the built-in tone.
func (p *Player) buffer(resource string) (*beep.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if buf, ok := p.buffers[resource]; ok {
		return buf, nil
	}

	var (
		buf *beep.Buffer
		err error
	)

	if resource == "" {
		buf, err = toneBuffer()
	} else {
		buf, err = fileBuffer(resource)
	}

	if err != nil {
		return nil, err
	}

	p.buffers[resource] = buf

	return buf, nil
}

// bellCommand splits the configured bell command. The number of bells is
// passed in the environment.
func bellCommand(cmdStr string, sound format.Sound) ([]string, []string, error) {
	args, err := shellquote.Split(cmdStr)
	if err != nil {
		return nil, nil, errBellCmd.Wrap(err)
	}

	if len(args) == 0 {
		return nil, nil, errEmptyBellCmd
	}

	env := []string{
		"PODIUM_BELLS=" + strconv.Itoa(sound.Bells),
		"PODIUM_TIMES_TO_PLAY=" + strconv.Itoa(sound.TimesToPlay),
	}

	return args, env, nil
}

func (p *Player) ring(sound format.Sound) {
	resource := sound.Resource
	if resource == "" {
		resource = p.opts.BellFile
	}

	buf, err := p.buffer(resource)
	if err != nil && resource != "" {
		slog.Error("falling back to the built-in bell", slog.Any("error", err))

		buf, err = p.buffer("")
	}

	if err != nil {
		slog.Error("unable to prepare bell", slog.Any("error", err))
		return
	}

	err = p.play(bellSequence(buf, sound))
	if err != nil {
		slog.Error("unable to play bell", slog.Any("error", err))
	}
}

// PlayBell rings sound and runs the bell command, if any.
func (p *Player) PlayBell(sound format.Sound) {
	if sound.Silent() {
		return
	}

	if p.opts.Sound {
		p.background(func() {
			p.ring(sound)
		})
	}

	if p.opts.BellCmd == "" {
		return
	}

	args, env, err := bellCommand(p.opts.BellCmd, sound)
	if err != nil {
		slog.Error("bell command", slog.Any("error", err))
		return
	}

	p.background(func() {
		if err := p.run(args, env); err != nil {
			slog.Error(
				"bell command failed",
				slog.String("cmd", p.opts.BellCmd),
				slog.Any("error", err),
			)
		}
	})
}

// MakeActive announces that a segment is being timed.
func (p *Player) MakeActive(name string, info period.Info) {
	if !p.opts.Notifications {
		return
	}

	msg := info.Text()
	if info.POIs() {
		msg += " · POIs allowed"
	}

	p.background(func() {
		if err := p.notify(fmt.Sprintf("%s: %s", appName, name), msg, p.opts.Icon); err != nil {
			slog.Error("unable to display notification", slog.Any("error", err))
		}
	})
}

// MakeInactive is called when the timer is stopped. Desktop notifications
// cannot be withdrawn so there is nothing to undo.
func (p *Player) MakeInactive() {
	slog.Debug("timer inactive")
}

// AttractAttention is called when a bell stops the timer.
func (p *Player) AttractAttention() {
	if !p.opts.Notifications {
		return
	}

	p.background(func() {
		err := p.attract(appName, "The timer was stopped by a bell", p.opts.Icon)
		if err != nil {
			slog.Error("unable to display notification", slog.Any("error", err))
		}
	})
}

// POIExpired rings a single bell when a point of information runs out.
func (p *Player) POIExpired() {
	p.PlayBell(format.NewSound(1))
}

// Wait blocks until every pending alert has finished.
func (p *Player) Wait() {
	p.wg.Wait()
}

// Close waits for pending alerts and releases the audio device.
func (p *Player) Close() {
	p.Wait()

	if p.started {
		speaker.Close()
	}
}
