// Package store persists per-user deck data in a local bolt database.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var usersBucket = []byte("users")

// UserRecord is everything persisted for one user, JSON-encoded under the
// user's id.
type UserRecord struct {
	Slides             json.RawMessage `json:"slides,omitempty"`
	LegalDocsGenerated int             `json:"legalDocsGenerated"`
	ResearchReports    int             `json:"researchReports"`
}

// HasSlides reports whether the record holds at least one saved slide.
func (r UserRecord) HasSlides() bool {
	var arr []json.RawMessage
	if err := json.Unmarshal(r.Slides, &arr); err != nil {
		return false
	}
	return len(arr) > 0
}

// UserStore is safe for concurrent use; bolt serializes writers.
type UserStore struct {
	db *bolt.DB
}

// Open initializes or opens the store at path.
func Open(path string) (*UserStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open user store: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create users bucket: %w", err)
	}
	return &UserStore{db: db}, nil
}

// Close closes the underlying database.
func (s *UserStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get loads the record for userID. Unknown users get a zero record, not
// an error.
func (s *UserStore) Get(userID string) (UserRecord, error) {
	var rec UserRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(usersBucket).Get([]byte(userID))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return UserRecord{}, fmt.Errorf("load user %q: %w", userID, err)
	}
	return rec, nil
}

// Put overwrites the whole record for userID.
func (s *UserStore) Put(userID string, rec UserRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode user %q: %w", userID, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).Put([]byte(userID), buf)
	})
	if err != nil {
		return fmt.Errorf("save user %q: %w", userID, err)
	}
	return nil
}

// SaveSlides stores the user's slides, preserving the rest of the record.
// The read-modify-write runs inside a single transaction, so concurrent
// saves for the same user cannot lose counter updates.
func (s *UserStore) SaveSlides(userID string, slides json.RawMessage) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		var rec UserRecord
		if v := b.Get([]byte(userID)); v != nil {
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
		}
		rec.Slides = slides
		buf, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(userID), buf)
	})
	if err != nil {
		return fmt.Errorf("save slides for %q: %w", userID, err)
	}
	return nil
}
