package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/podium/internal/period"
)

var (
	blue   = period.Color(0xff0000ff)
	orange = period.Color(0xffff8800)
)

func bellWith(offset uint64, info period.Info) Bell {
	b := NewBell(offset, 1)
	b.NextPeriod = info

	return b
}

func mustSegment(t *testing.T, length uint64, first period.Info, bells ...Bell) *Segment {
	t.Helper()

	seg, err := NewSegment(KindSpeech, length, first, bells...)
	require.NoError(t, err)

	return seg
}

func TestNewSegmentSortsBells(t *testing.T) {
	seg := mustSegment(t, 420, period.Info{},
		NewBell(420, 2),
		NewBell(60, 1),
		NewBell(360, 1),
	)

	offsets := make([]uint64, 0, 3)
	for _, b := range seg.Bells() {
		offsets = append(offsets, b.Offset)
	}

	assert.Equal(t, []uint64{60, 360, 420}, offsets)
}

func TestNewSegmentRejectsDuplicateBells(t *testing.T) {
	_, err := NewSegment(KindSpeech, 420, period.Info{},
		NewBell(60, 1),
		NewBell(60, 2),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateBell)
	assert.Contains(t, err.Error(), "1:00")
}

func TestPeriodInfoForTimeBackfill(t *testing.T) {
	seg := mustSegment(t, 60, period.Info{},
		bellWith(10, period.Info{Description: period.Ptr("A")}),
		bellWith(20, period.Info{Color: period.Ptr(blue)}),
	)

	got := seg.PeriodInfoForTime(25)

	want := period.New("A", blue, false)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("PeriodInfoForTime(25) mismatch (-want +got):\n%s", diff)
	}
}

func TestPeriodInfoForTimeNewestBellWins(t *testing.T) {
	seg := mustSegment(t, 60, period.New("Opening", orange, false),
		bellWith(10, period.New("A", orange, true)),
		bellWith(20, period.Info{Description: period.Ptr("B")}),
	)

	got := seg.PeriodInfoForTime(20)

	assert.Equal(t, "B", got.Text())
	assert.Equal(t, orange, got.Background())
	assert.True(t, got.POIs())
}

func TestPeriodInfoForTimeAtZero(t *testing.T) {
	first := period.Info{Description: period.Ptr("Opening")}
	seg := mustSegment(t, 60, first,
		bellWith(30, period.Info{Description: period.Ptr("Warning")}),
	)

	want := period.Default().Overlay(first)

	if diff := cmp.Diff(want, seg.PeriodInfoForTime(0)); diff != "" {
		t.Fatalf("PeriodInfoForTime(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestPeriodInfoForTimeBellAtZeroOnlyBackfills(t *testing.T) {
	first := period.Info{Description: period.Ptr("Opening")}
	seg := mustSegment(t, 60, first,
		bellWith(0, period.New("Zero", blue, true)),
	)

	got := seg.PeriodInfoForTime(0)

	// every field of the working value is already set by the default
	assert.Equal(t, "Opening", got.Text())
	assert.Equal(t, period.Transparent, got.Background())
	assert.False(t, got.POIs())
}

func TestPeriodInfoForTimeStableBetweenBells(t *testing.T) {
	seg := mustSegment(t, 420, period.Info{},
		bellWith(60, period.New("POIs allowed", period.Transparent, true)),
		bellWith(360, period.New("Warning", orange, false)),
		bellWith(420, period.Info{Description: period.Ptr("Overtime")}),
	)

	bounds := []uint64{0, 60, 360, 420, 600}

	for i := 0; i < len(bounds)-1; i++ {
		want := seg.PeriodInfoForTime(bounds[i])

		for ts := bounds[i] + 1; ts < bounds[i+1]; ts++ {
			got := seg.PeriodInfoForTime(ts)
			if !want.Equal(got) {
				t.Fatalf(
					"period changed between bells at t=%d: %v != %v",
					ts,
					got,
					want,
				)
			}
		}
	}

	assert.Equal(t, "Overtime", seg.PeriodInfoForTime(500).Text())
	assert.Equal(t, orange, seg.PeriodInfoForTime(500).Background())
}

func TestBellAtTime(t *testing.T) {
	seg := mustSegment(t, 420, period.Info{},
		NewBell(60, 1),
		NewBell(420, 2),
	)

	b, ok := seg.BellAtTime(420)
	require.True(t, ok)
	assert.Equal(t, 2, b.Sound.Bells)

	_, ok = seg.BellAtTime(61)
	assert.False(t, ok)

	_, ok = seg.BellAtTime(0)
	assert.False(t, ok)
}

func TestFirstBellFromTime(t *testing.T) {
	seg := mustSegment(t, 420, period.Info{},
		NewBell(60, 1),
		NewBell(420, 2),
	)

	b, ok := seg.FirstBellFromTime(0)
	require.True(t, ok)
	assert.Equal(t, uint64(60), b.Offset)

	b, ok = seg.FirstBellFromTime(60)
	require.True(t, ok)
	assert.Equal(t, uint64(60), b.Offset)

	b, ok = seg.FirstBellFromTime(61)
	require.True(t, ok)
	assert.Equal(t, uint64(420), b.Offset)

	_, ok = seg.FirstBellFromTime(421)
	assert.False(t, ok)
}

func TestSegmentDoesNotShareBellPeriods(t *testing.T) {
	info := period.Info{Description: period.Ptr("A")}
	seg := mustSegment(t, 60, period.Info{}, bellWith(10, info))

	*info.Description = "changed"

	bells := seg.Bells()
	*bells[0].NextPeriod.Description = "also changed"

	assert.Equal(t, "A", seg.PeriodInfoForTime(10).Text())
}
