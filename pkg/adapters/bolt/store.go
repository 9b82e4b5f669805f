// Package bolt stores list entries in a BoltDB file.
package bolt

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var listsBucket = []byte("lists")

// Store implements ports.EntryStore over bbolt. Every key owns a nested
// bucket under "lists" whose entries are keyed by a big-endian sequence,
// so a cursor walk yields them in insertion order.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(listsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating lists bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Entries(ctx context.Context, key string) ([]string, error) {
	var entries []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(listsBucket).Bucket([]byte(key))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			entries = append(entries, string(v))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading entries %q: %w", key, err)
	}
	return entries, nil
}

func (s *Store) Append(ctx context.Context, key string, entries ...string) error {
	if len(entries) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(listsBucket).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		for _, e := range entries {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := b.Put(itob(seq), []byte(e)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("appending entries %q: %w", key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket(listsBucket).DeleteBucket([]byte(key))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("clearing entries %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
