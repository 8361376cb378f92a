package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	cases := map[uint64]string{
		0:    "0:00",
		5:    "0:05",
		65:   "1:05",
		420:  "7:00",
		3600: "1:00:00",
		3725: "1:02:05",
	}

	for secs, want := range cases {
		assert.Equal(t, want, FormatClock(secs), "secs=%d", secs)
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "7:00", FormatRemaining(0, 420))
	assert.Equal(t, "0:00", FormatRemaining(420, 420))
	assert.Equal(t, "+0:15", FormatRemaining(435, 420))
}

func TestParseClock(t *testing.T) {
	valid := map[string]uint64{
		"45":      45,
		"7:00":    420,
		"0:30":    30,
		"1:02:05": 3725,
		"1m30s":   90,
		" 2m ":    120,
	}

	for in, want := range valid {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "1:60", "1:5", "a:00", "-1m", "1:00:00:00"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestRoundToStartAndEnd(t *testing.T) {
	ts := time.Date(2024, time.March, 9, 14, 22, 3, 0, time.UTC)

	assert.Equal(
		t,
		time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		RoundToStart(ts),
	)
	assert.Equal(
		t,
		time.Date(2024, time.March, 9, 23, 59, 59, 0, time.UTC),
		RoundToEnd(ts),
	)
}
