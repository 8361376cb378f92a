package store

import (
	"bytes"
	"encoding/json"
	"strconv"

	"go.etcd.io/bbolt"

	"github.com/ayoisaiah/podium/internal/models"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

const schemaVersion = 1

var versionKey = []byte("version")

// migrateHistory re-keys history records whose key is not derived from
// their start time.
func migrateHistory(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(historyBucket))

	type entry struct {
		oldKey, newKey, value []byte
	}

	var moved []entry

	err := bucket.ForEach(func(k, v []byte) error {
		var rec models.Record

		err := json.Unmarshal(v, &rec)
		if err != nil {
			return err
		}

		newKey := timeutil.ToKey(rec.StartTime)
		if !bytes.Equal(k, newKey) {
			moved = append(moved, entry{bytes.Clone(k), newKey, bytes.Clone(v)})
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, e := range moved {
		err = bucket.Delete(e.oldKey)
		if err != nil {
			return err
		}

		err = bucket.Put(e.newKey, e.value)
		if err != nil {
			return err
		}
	}

	return nil
}

// migrateStates drops saved states that can no longer be decoded.
func migrateStates(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(stateBucket))

	var stale [][]byte

	err := bucket.ForEach(func(k, v []byte) error {
		var probe map[string]any
		if json.Unmarshal(v, &probe) != nil {
			stale = append(stale, bytes.Clone(k))
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, k := range stale {
		err = bucket.Delete(k)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	meta := tx.Bucket([]byte(metaBucket))

	version, _ := strconv.Atoi(string(meta.Get(versionKey)))
	if version >= schemaVersion {
		return nil
	}

	err := migrateHistory(tx)
	if err != nil {
		return err
	}

	err = migrateStates(tx)
	if err != nil {
		return err
	}

	return meta.Put(versionKey, []byte(strconv.Itoa(schemaVersion)))
}
