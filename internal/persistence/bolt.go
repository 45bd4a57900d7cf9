package persistence

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/CodeStoryApp/ndx-serializable/flat"
	apperrors "github.com/CodeStoryApp/ndx-serializable/internal/errors"
)

var bucketSnapshots = []byte("snapshots")

// Snapshot is a flattened index stored under a generated ID.
type Snapshot struct {
	ID        string              `json:"id"`
	IndexName string              `json:"index_name"`
	CreatedAt time.Time           `json:"created_at"`
	Table     *flat.Table[string] `json:"table,omitempty"`
}

// SnapshotInfo is the metadata of a stored snapshot, without its table.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	IndexName string    `json:"index_name"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotStore keeps named snapshots of flattened indexes in a bbolt
// database. Values are gob-encoded Snapshot records keyed by their ID.
type SnapshotStore struct {
	db *bbolt.DB
}

// OpenSnapshotStore opens (or creates) the snapshot database at path.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshot bucket: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Create stores a snapshot of the given flattened index and returns its
// generated ID.
func (s *SnapshotStore) Create(indexName string, table *flat.Table[string]) (string, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		IndexName: indexName,
		CreatedAt: time.Now().UTC(),
		Table:     table,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&snap); err != nil {
		return "", fmt.Errorf("failed to gob encode snapshot: %w", err)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(snap.ID), buf.Bytes())
	})
	if err != nil {
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}
	return snap.ID, nil
}

// Get returns the snapshot with the given ID.
func (s *SnapshotStore) Get(id string) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSnapshots).Get([]byte(id))
		if data == nil {
			return apperrors.NewSnapshotNotFoundError(id)
		}
		return gob.NewDecoder(bytes.NewReader(data)).Decode(&snap)
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns metadata for all stored snapshots, ordered by ID.
func (s *SnapshotStore) List() ([]SnapshotInfo, error) {
	infos := make([]SnapshotInfo, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(_, v []byte) error {
			var snap Snapshot
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&snap); err != nil {
				return err
			}
			infos = append(infos, SnapshotInfo{
				ID:        snap.ID,
				IndexName: snap.IndexName,
				CreatedAt: snap.CreatedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Delete removes the snapshot with the given ID.
func (s *SnapshotStore) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket.Get([]byte(id)) == nil {
			return apperrors.NewSnapshotNotFoundError(id)
		}
		return bucket.Delete([]byte(id))
	})
}
