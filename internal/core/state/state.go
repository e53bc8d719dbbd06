// Package state persists QuantumCalc run history using BoltDB.
// All writes are transactional; reads use read-only transactions to minimise contention.
package state

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	v1 "github.com/f9-o/quantumcalc/api/v1"
	"github.com/f9-o/quantumcalc/pkg/errs"
)

var bucketRuns = []byte("runs")

// DB wraps a BoltDB instance with typed accessor methods.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the state database at the given path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStateRead, "state.open").WithResource(path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRuns); err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketRuns, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errs.Wrap(err, errs.ErrStateWrite, "state.init")
	}

	return &DB{bolt: db}, nil
}

// Close closes the underlying BoltDB file.
func (db *DB) Close() error {
	return db.bolt.Close()
}

// runKey orders records chronologically under bbolt's byte-wise key order.
func runKey(s v1.RunSummary) []byte {
	return []byte(s.StartedAt.UTC().Format("2006-01-02T15:04:05.000000000Z") + "/" + s.ID)
}

// PutRun stores a completed run summary.
func (db *DB) PutRun(s v1.RunSummary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errs.Wrap(err, errs.ErrStateWrite, "state.put_run")
	}
	err = db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(runKey(s), data)
	})
	if err != nil {
		return errs.Wrap(err, errs.ErrStateWrite, "state.put_run").WithResource(s.ID)
	}
	return nil
}

// ListRuns returns stored runs newest first. limit <= 0 returns all of them.
func (db *DB) ListRuns(limit int) ([]v1.RunSummary, error) {
	var runs []v1.RunSummary
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var s v1.RunSummary
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("unmarshal run %q: %w", k, err)
			}
			runs = append(runs, s)
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrStateRead, "state.list_runs")
	}
	return runs, nil
}

// LastRun returns the most recent run, or nil, nil when history is empty.
func (db *DB) LastRun() (*v1.RunSummary, error) {
	runs, err := db.ListRuns(1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// Prune deletes the oldest runs so that at most keep remain. keep <= 0 is a no-op.
// Returns the number of records removed, which is 0 unless the deletes committed.
func (db *DB) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	var stale [][]byte
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		excess := b.Stats().KeyN - keep
		if excess <= 0 {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil && len(stale) < excess; k, _ = c.Next() {
			stale = append(stale, append([]byte(nil), k...))
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(err, errs.ErrStateWrite, "state.prune")
	}
	return len(stale), nil
}
