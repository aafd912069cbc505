// Package ledger keeps idempotency keys for payment mutations in a BoltDB file.
//
// A key is minted the first time an operation is attempted and handed out
// again on every retry until the operation is confirmed, so the API can
// recognise a resubmitted charge after a dropped response. Confirmed
// operations forget their key; the next attempt is a new operation.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
)

const bucketName = "idempotency"

var ErrNotFound = errors.New("idempotency entry not found")

// Entry is one pending operation and the key it was first sent with.
type Entry struct {
	Operation string    `json:"operation"`
	Key       string    `json:"key"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

type Ledger struct {
	db *bolt.DB
}

// Open opens (or creates) the ledger file and ensures its bucket exists.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("can not create ledger directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("can not open ledger: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// OperationKey builds a stable operation name. Row ids are sorted so the
// same batch selected in a different order maps to the same entry.
func OperationKey(kind, gateway string, rowIDs ...string) string {
	ids := append([]string(nil), rowIDs...)
	sort.Strings(ids)
	return kind + ":" + gateway + ":" + strings.Join(ids, ",")
}

// Acquire returns the key for operation, minting one on first use. Every call
// counts as an attempt.
func (l *Ledger) Acquire(operation string) (Entry, error) {
	var result Entry

	err := l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		now := time.Now().UTC()

		if existing := b.Get([]byte(operation)); existing != nil {
			if err := json.Unmarshal(existing, &result); err != nil {
				return err
			}
		} else {
			result = Entry{
				Operation: operation,
				Key:       uuid.NewString(),
				CreatedAt: now,
			}
		}

		result.Attempts++
		result.LastSeen = now

		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		return b.Put([]byte(operation), data)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to acquire idempotency key: %w", err)
	}

	return result, nil
}

func (l *Ledger) Get(operation string) (Entry, error) {
	var result Entry

	err := l.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(operation))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &result)
	})
	if err != nil {
		return Entry{}, err
	}

	return result, nil
}

// Confirm forgets operation. Confirming an unknown operation is not an error.
func (l *Ledger) Confirm(operation string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(operation))
	})
}

// Pending lists operations that were attempted but never confirmed.
func (l *Ledger) Pending() ([]Entry, error) {
	var items []Entry

	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			items = append(items, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []Entry{}
	}
	return items, nil
}

// Prune drops entries not seen since before cutoff and returns how many.
func (l *Ledger) Prune(cutoff time.Time) (int, error) {
	removed := 0

	err := l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			if e.LastSeen.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})

	return removed, err
}
