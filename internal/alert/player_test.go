package alert

import (
	"errors"
	"sync"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/period"
)

type calls struct {
	mu      sync.Mutex
	played  []int
	notes   []string
	alerts  []string
	cmds    [][]string
	envs    [][]string
	playErr error
}

func (c *calls) add(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

func newTestPlayer(opts Options) (*Player, *calls) {
	c := &calls{}
	p := New(opts)

	p.play = func(s beep.Streamer) error {
		n := drain(s)
		c.add(func() { c.played = append(c.played, n) })

		return c.playErr
	}
	p.notify = func(title, msg, _ string) error {
		c.add(func() { c.notes = append(c.notes, title+"|"+msg) })
		return nil
	}
	p.attract = func(title, msg, _ string) error {
		c.add(func() { c.alerts = append(c.alerts, msg) })
		return nil
	}
	p.run = func(args, env []string) error {
		c.add(func() {
			c.cmds = append(c.cmds, args)
			c.envs = append(c.envs, env)
		})

		return nil
	}

	return p, c
}

func drain(s beep.Streamer) int {
	total := 0
	samples := make([][2]float64, 512)

	for {
		n, ok := s.Stream(samples)
		total += n

		if !ok {
			return total
		}
	}
}

func TestBellSequenceLength(t *testing.T) {
	buf, err := toneBuffer()
	require.NoError(t, err)

	ring := buf.Len()
	slot := sampleRate.N(format.DefaultRepeatPeriod)
	require.Less(t, ring, slot)

	testCases := []struct {
		name  string
		sound format.Sound
		want  int
	}{
		{"single", format.NewSound(1), ring},
		{"double", format.NewSound(2), slot + ring},
		{
			"repeated",
			format.Sound{Bells: 3, TimesToPlay: 2, RepeatPeriod: format.DefaultRepeatPeriod},
			5*slot + ring,
		},
		{"silent", format.NewSound(0), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, drain(bellSequence(buf, tc.sound)))
		})
	}
}

func TestBellSequenceCutsLongRings(t *testing.T) {
	buf, err := toneBuffer()
	require.NoError(t, err)

	sound := format.Sound{Bells: 2, TimesToPlay: 1, RepeatPeriod: toneLength / 5}
	slot := sampleRate.N(sound.RepeatPeriod)

	assert.Equal(t, 2*slot, drain(bellSequence(buf, sound)))
}

func TestBellCommand(t *testing.T) {
	args, env, err := bellCommand(`notify-send "Bell rang" -u low`, format.NewSound(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"notify-send", "Bell rang", "-u", "low"}, args)
	assert.Contains(t, env, "PODIUM_BELLS=2")

	_, _, err = bellCommand(`echo "unterminated`, format.NewSound(1))
	require.ErrorIs(t, err, errBellCmd)

	_, _, err = bellCommand("   ", format.NewSound(1))
	require.ErrorIs(t, err, errEmptyBellCmd)
}

func TestPlayBell(t *testing.T) {
	p, c := newTestPlayer(Options{Sound: true, BellCmd: "touch /tmp/rang"})

	p.PlayBell(format.NewSound(2))
	p.PlayBell(format.NewSound(0))
	p.Wait()

	assert.Len(t, c.played, 1)
	assert.Equal(t, [][]string{{"touch", "/tmp/rang"}}, c.cmds)
}

func TestPlayBellSoundDisabled(t *testing.T) {
	p, c := newTestPlayer(Options{})

	p.PlayBell(format.NewSound(1))
	p.POIExpired()
	p.Wait()

	assert.Empty(t, c.played)
	assert.Empty(t, c.cmds)
}

func TestBadBellFileFallsBack(t *testing.T) {
	p, c := newTestPlayer(Options{Sound: true, BellFile: "/nonexistent/bell.ogg"})

	p.PlayBell(format.NewSound(1))
	p.Wait()

	require.Len(t, c.played, 1)
	assert.Positive(t, c.played[0])
}

func TestPlayErrorIsNotFatal(t *testing.T) {
	p, c := newTestPlayer(Options{Sound: true})
	c.playErr = errors.New("no audio device")

	p.PlayBell(format.NewSound(1))
	p.Wait()

	assert.Len(t, c.played, 1)
}

func TestNotifications(t *testing.T) {
	p, c := newTestPlayer(Options{Notifications: true})

	p.MakeActive("Prime Minister", period.New("Speaking", period.Transparent, true))
	p.AttractAttention()
	p.MakeInactive()
	p.Wait()

	assert.Equal(t, []string{"Podium: Prime Minister|Speaking · POIs allowed"}, c.notes)
	assert.Len(t, c.alerts, 1)

	q, d := newTestPlayer(Options{})
	q.MakeActive("Prime Minister", period.Default())
	q.AttractAttention()
	q.Wait()

	assert.Empty(t, d.notes)
	assert.Empty(t, d.alerts)
}

func TestUnsupportedSoundFile(t *testing.T) {
	_, err := fileBuffer("bell.aiff")
	assert.ErrorIs(t, err, errReadSound)

	_, err = fileBuffer("bell")
	assert.ErrorIs(t, err, errInvalidSoundFormat)
}
