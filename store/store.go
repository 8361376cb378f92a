// Package store connects to the data store and manages saved debates and
// debate history
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/exp/slices"

	"github.com/ayoisaiah/podium/internal/apperr"
	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/models"
	"github.com/ayoisaiah/podium/internal/osutil"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

const (
	stateBucket   = "states"
	historyBucket = "history"
	metaBucket    = "meta"
)

var (
	errPodiumRunning = errors.New(
		"is Podium already running? Only one instance can be active at a time",
	)
	errNoSavedState = &apperr.Error{
		Message: "no saved debate for %s: please start a new one",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	path string
}

// SaveState stores the state of a debate under its format. Any previously
// saved state for that format is overwritten.
func (c *Client) SaveState(st *debate.State) error {
	value, err := json.Marshal(st)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(st.Format), value)
	})
}

// GetState retrieves the saved state for a format.
func (c *Client) GetState(format string) (*debate.State, error) {
	var st debate.State

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(stateBucket)).Get([]byte(format))
		if len(v) == 0 {
			return errNoSavedState.Fmt(format)
		}

		return json.Unmarshal(v, &st)
	})
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// ListStates returns every saved debate, most recently saved first.
func (c *Client) ListStates() ([]debate.State, error) {
	var states []debate.State

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).ForEach(func(_, v []byte) error {
			var st debate.State

			err := json.Unmarshal(v, &st)
			if err != nil {
				return err
			}

			states = append(states, st)

			return nil
		})
	})

	slices.SortStableFunc(states, func(a, b debate.State) int {
		return b.SavedAt.Compare(a.SavedAt)
	})

	return states, err
}

func (c *Client) DeleteState(format string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Delete([]byte(format))
	})
}

func (c *Client) DeleteAllStates() error {
	return c.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(stateBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucket([]byte(stateBucket))

		return err
	})
}

// SaveRecord adds a debate to the history. A record with the same start
// time is overwritten.
func (c *Client) SaveRecord(rec *models.Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(historyBucket)).
			Put(timeutil.ToKey(rec.StartTime), value)
	})
}

// GetRecords returns the debates that were running at any point between
// startTime and endTime. If formats is not empty, only debates timed with
// one of those formats are returned.
func (c *Client) GetRecords(
	startTime, endTime time.Time,
	formats []string,
) ([]models.Record, error) {
	var records []models.Record

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(historyBucket)).Cursor()
		minKey := timeutil.ToKey(startTime)
		maxKey := timeutil.ToKey(endTime)

		sk, sv := cur.Seek(minKey)
		// a debate that started before startTime is still included if
		// it ended after it
		if pk, pv := cur.Prev(); pk != nil {
			var rec models.Record

			err := json.Unmarshal(pv, &rec)
			if err != nil {
				return err
			}

			if rec.EndTime.After(startTime) {
				sk, sv = pk, pv
			} else {
				sk, sv = cur.Next()
			}
		} else {
			sk, sv = cur.Seek(minKey)
		}

		for k, v := sk, sv; k != nil && bytes.Compare(k, maxKey) <= 0; k, v = cur.Next() {
			var rec models.Record

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			if len(formats) != 0 && !slices.Contains(formats, rec.Format) {
				continue
			}

			records = append(records, rec)
		}

		return nil
	})

	return records, err
}

func (c *Client) DeleteRecords(records []models.Record) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(historyBucket))

		for i := range records {
			err := b.Delete(timeutil.ToKey(records[i].StartTime))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Open reopens the database after it was closed.
func (c *Client) Open() error {
	db, err := openDB(c.path)
	if err != nil {
		return err
	}

	c.DB = db

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	fileMode := osutil.FilePermission

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errPodiumRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		DB:   db,
		path: dbPath,
	}

	// Create the necessary buckets for storing data if they do not exist
	// already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{stateBucket, historyBucket, metaBucket} {
			_, err = tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

// IsLocked reports whether err means another instance holds the database.
func IsLocked(err error) bool {
	return errors.Is(err, errPodiumRunning)
}
