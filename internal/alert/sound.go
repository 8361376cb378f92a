package alert

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/podium/internal/format"
)

const (
	sampleRate beep.SampleRate = 44100
	toneFreq                   = 880.0
	toneLength                 = 250 * time.Millisecond
	resampleQuality            = 4
)

// toneBuffer renders the built-in bell: a short tone that fades out.
func toneBuffer() (*beep.Buffer, error) {
	tone, err := generators.SineTone(sampleRate, toneFreq)
	if err != nil {
		return nil, err
	}

	n := sampleRate.N(toneLength)

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   2,
	})

	buf.Append(&effects.Volume{
		Streamer: beep.Take(n, fadeOut(tone, n)),
		Base:     2,
		Volume:   -1,
	})

	return buf, nil
}

// fadeOut scales s linearly down to silence over n samples.
func fadeOut(s beep.Streamer, n int) beep.Streamer {
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		k, ok := s.Stream(samples)

		for i := range samples[:k] {
			gain := 1 - float64(pos)/float64(n)
			if gain < 0 {
				gain = 0
			}

			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}

		return k, ok
	})
}

func decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case ".ogg":
		return vorbis.Decode(rc)
	case ".mp3":
		return mp3.Decode(rc)
	case ".flac":
		return flac.Decode(rc)
	case ".wav":
		return wav.Decode(rc)
	default:
		return nil, beep.Format{}, errInvalidSoundFormat.Fmt(ext)
	}
}

// fileBuffer decodes an audio file into memory at the speaker's sample rate.
func fileBuffer(path string) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, errInvalidSoundFormat.Fmt(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errReadSound.Fmt(path).Wrap(err)
	}

	stream, sf, err := decode(f, ext)
	if err != nil {
		_ = f.Close()
		return nil, errReadSound.Fmt(path).Wrap(err)
	}

	defer stream.Close()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: sf.NumChannels,
		Precision:   sf.Precision,
	})

	var s beep.Streamer = stream
	if sf.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, sf.SampleRate, sampleRate, stream)
	}

	buf.Append(s)

	return buf, nil
}

// bellSequence lays out the rings of sound. Every ring starts
// RepeatPeriod after the previous one; rings longer than that are cut.
func bellSequence(buf *beep.Buffer, sound format.Sound) beep.Streamer {
	if sound.Silent() {
		return beep.Silence(0)
	}

	period := sound.RepeatPeriod
	if period <= 0 {
		period = format.DefaultRepeatPeriod
	}

	slot := sampleRate.N(period)
	ring := min(buf.Len(), slot)

	rings := sound.Bells * sound.TimesToPlay
	seq := make([]beep.Streamer, 0, rings*2)

	for i := range rings {
		seq = append(seq, buf.Streamer(0, ring))
		// no trailing silence after the last ring
		if i < rings-1 {
			seq = append(seq, beep.Silence(slot-ring))
		}
	}

	return beep.Seq(seq...)
}
