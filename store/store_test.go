package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/models"
	"github.com/ayoisaiah/podium/internal/period"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "podium.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

var base = time.Date(2024, time.March, 9, 18, 30, 0, 0, time.UTC)

func record(format string, start time.Time, minutes int) models.Record {
	return models.Record{
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
		Format:    format,
		Debate:    format + " debate",
		Segments: []models.SegmentRecord{
			{Name: "First", Elapsed: 425, Length: 420},
			{Name: "Second", Elapsed: 400, Length: 420},
		},
	}
}

func TestStateRoundTrip(t *testing.T) {
	c := newTestClient(t)

	st := &debate.State{
		SavedAt: base,
		Format:  "bp.yml",
		State: engine.State{
			Period:   period.New("Warning", 0xffff0000, false),
			RunState: engine.StoppedByUser.String(),
			Elapsed:  42,
		},
		SegmentElapsed: []uint64{420, 42, 0},
		PrepElapsed:    900,
		Position:       2,
		PrepEnabled:    true,
	}

	require.NoError(t, c.SaveState(st))

	got, err := c.GetState("bp.yml")
	require.NoError(t, err)

	if diff := cmp.Diff(st, got); diff != "" {
		t.Fatalf("GetState() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetStateMissing(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetState("nope.yml")
	assert.ErrorIs(t, err, errNoSavedState)
}

func TestListAndDeleteStates(t *testing.T) {
	c := newTestClient(t)

	for i, name := range []string{"a.yml", "b.yml", "c.yml"} {
		require.NoError(t, c.SaveState(&debate.State{
			Format:  name,
			SavedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	states, err := c.ListStates()
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, "c.yml", states[0].Format)
	assert.Equal(t, "a.yml", states[2].Format)

	require.NoError(t, c.DeleteState("b.yml"))

	states, err = c.ListStates()
	require.NoError(t, err)
	assert.Len(t, states, 2)

	require.NoError(t, c.DeleteAllStates())

	states, err = c.ListStates()
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestGetRecords(t *testing.T) {
	c := newTestClient(t)

	early := record("bp.yml", base.Add(-2*time.Hour), 30)
	// started before the window but still running inside it
	straddling := record("australs.yml", base.Add(-30*time.Minute), 60)
	inside := record("bp.yml", base.Add(time.Hour), 60)
	late := record("bp.yml", base.Add(48*time.Hour), 60)

	for _, r := range []models.Record{early, straddling, inside, late} {
		require.NoError(t, c.SaveRecord(&r))
	}

	end := timeutil.RoundToEnd(base)

	got, err := c.GetRecords(base, end, nil)
	require.NoError(t, err)

	want := []models.Record{straddling, inside}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("GetRecords() mismatch (-want +got):\n%s", diff)
	}

	got, err = c.GetRecords(base, end, []string{"bp.yml"})
	require.NoError(t, err)
	assert.Equal(t, []models.Record{inside}, got)

	got, err = c.GetRecords(base.Add(-24*time.Hour), end.Add(72*time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	require.NoError(t, c.DeleteRecords([]models.Record{early, late}))

	got, err = c.GetRecords(time.Time{}, end.Add(72*time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Record{straddling, inside}, got)
}

func TestRecordTotals(t *testing.T) {
	r := record("bp.yml", base, 15)

	assert.Equal(t, 825*time.Second, r.Total())
	assert.Equal(t, []string{"First"}, r.Overran())
}

func TestSecondClientIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podium.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	_, err = NewClient(path)
	require.Error(t, err)
	assert.True(t, IsLocked(err))
}

func TestReopen(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.SaveState(&debate.State{Format: "bp.yml"}))
	require.NoError(t, c.Close())
	require.NoError(t, c.Open())

	_, err := c.GetState("bp.yml")
	assert.NoError(t, err)
}

func TestMigrateHistoryKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podium.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	r := record("bp.yml", base.Add(1500*time.Millisecond), 10)

	// simulate a database written before keys carried sub-second precision
	err = c.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(metaBucket)).Delete(versionKey); err != nil {
			return err
		}

		return tx.Bucket([]byte(historyBucket)).Put(
			[]byte(r.StartTime.Format(time.RFC3339)),
			[]byte(`{"start_time":"2024-03-09T18:30:01.5Z","format":"bp.yml"}`),
		)
	})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	err = c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(historyBucket))
		assert.Nil(t, b.Get([]byte(r.StartTime.Format(time.RFC3339))))
		assert.NotNil(t, b.Get(timeutil.ToKey(r.StartTime)))

		return nil
	})
	require.NoError(t, err)
}
