// Package formatfile reads debate formats from YAML files.
package formatfile

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/podium/internal/timeutil"
)

const (
	// stay leaves the period unchanged.
	stay = "#stay"
	// finish places a bell at the end of the segment.
	finish = "finish"
)

type (
	// File is the structure of a debate format file.
	File struct {
		PrepTime    *PrepTime    `yaml:"prep_time,omitempty"`
		Name        string       `yaml:"name"`
		ShortName   string       `yaml:"short_name,omitempty"`
		Info        Info         `yaml:"info,omitempty"`
		PeriodTypes []PeriodType `yaml:"period_types,omitempty"`
		SpeechTypes []SpeechType `yaml:"speech_types"`
		Speeches    []Speech     `yaml:"speeches"`
	}

	// Info describes where and how a format is used.
	Info struct {
		Description string   `yaml:"description,omitempty" json:"description,omitempty"`
		Regions     []string `yaml:"regions,omitempty"     json:"regions,omitempty"`
		Levels      []string `yaml:"levels,omitempty"      json:"levels,omitempty"`
		UsedAt      []string `yaml:"used_at,omitempty"     json:"used_at,omitempty"`
	}

	// PeriodType is a named period that bells switch to.
	PeriodType struct {
		Ref         string `yaml:"ref"`
		Name        string `yaml:"name"`
		Description string `yaml:"description,omitempty"`
		Color       string `yaml:"color,omitempty"`
		POIsAllowed bool   `yaml:"pois_allowed,omitempty"`
	}

	// SpeechType is the timing shared by one or more speeches.
	SpeechType struct {
		Ref         string `yaml:"ref"`
		FirstPeriod string `yaml:"first_period,omitempty"`
		Bells       []Bell `yaml:"bells,omitempty"`
		Length      Clock  `yaml:"length"`
	}

	// PrepTime is the preparation before the first speech. Controlled prep
	// time lists its own bells; otherwise the configured prep bells are
	// used.
	PrepTime struct {
		// Name replaces the usual "Prep time" label
		Name        string `yaml:"name,omitempty"`
		FirstPeriod string `yaml:"first_period,omitempty"`
		Bells       []Bell `yaml:"bells,omitempty"`
		Length      Clock  `yaml:"length"`
		Controlled  bool   `yaml:"controlled,omitempty"`
	}

	// Bell is a bell within a speech type or prep time.
	Bell struct {
		// Number is the number of bells rung, one if unset
		Number *int `yaml:"number,omitempty"`
		// Time is a clock time such as "6:00" or "finish"
		Time        string `yaml:"time"`
		NextPeriod  string `yaml:"next_period,omitempty"`
		Sound       string `yaml:"sound,omitempty"`
		TimesToPlay int    `yaml:"times_to_play,omitempty"`
		PauseOnBell bool   `yaml:"pause_on_bell,omitempty"`
	}

	// Speech is one speech of the debate.
	Speech struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}

	// Clock is a length of time written as "m:ss", "h:mm:ss", a number of
	// seconds or a Go duration.
	Clock uint64
)

func (c *Clock) UnmarshalYAML(node *yaml.Node) error {
	secs, err := timeutil.ParseClock(node.Value)
	if err != nil {
		return err
	}

	*c = Clock(secs)

	return nil
}

func (c Clock) MarshalYAML() (any, error) {
	return timeutil.FormatClock(uint64(c)), nil
}

// offset resolves a bell time within a segment of the given length.
func (b *Bell) offset(length uint64) (uint64, error) {
	if strings.EqualFold(strings.TrimSpace(b.Time), finish) {
		return length, nil
	}

	return timeutil.ParseClock(b.Time)
}
