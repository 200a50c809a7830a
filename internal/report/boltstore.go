package report

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/PentesterFlow/OpenFuzzer/internal/analyzer"
)

var (
	bucketFindings = []byte("findings")
	bucketResults  = []byte("results")
)

// BoltStore archives findings in a BoltDB file, keyed by insertion
// order so the discovery sequence survives a round trip.
type BoltStore struct {
	db   *bolt.DB
	path string
}

// NewBoltStore opens (or creates) a findings database.
func NewBoltStore(path string) (*BoltStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketFindings); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketResults)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltStore{db: db, path: path}, nil
}

// AppendFindings stores findings under monotonically increasing keys.
func (s *BoltStore) AppendFindings(findings []analyzer.Finding) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFindings)
		if b == nil {
			return fmt.Errorf("findings bucket not found")
		}

		for _, f := range findings {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}

			data, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("failed to marshal finding: %w", err)
			}

			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := b.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Findings returns every archived finding in insertion order.
func (s *BoltStore) Findings() ([]analyzer.Finding, error) {
	out := make([]analyzer.Finding, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFindings)
		if b == nil {
			return fmt.Errorf("findings bucket not found")
		}

		return b.ForEach(func(_, v []byte) error {
			var f analyzer.Finding
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			out = append(out, f)
			return nil
		})
	})
	return out, err
}

// SaveResult stores a complete scan result keyed by its start time.
func (s *BoltStore) SaveResult(result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		if b == nil {
			return fmt.Errorf("results bucket not found")
		}
		key := []byte(result.StartedAt.UTC().Format(time.RFC3339Nano))
		return b.Put(key, data)
	})
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
