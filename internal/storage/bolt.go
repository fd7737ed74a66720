// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// DefaultFileMode is used for the database file.
const DefaultFileMode = 0o600

// Bolt is a Store kept in one bucket of a bbolt database file.
// Several Bolt stores may share a database, one per scope.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

var _ Store = (*Bolt)(nil)

// OpenBoltDB opens (creating if needed) the database file at path.
func OpenBoltDB(path string) (*bolt.DB, error) {
	if path == "" {
		return nil, errors.New("storage: bolt path is missing")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, DefaultFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}
	return db, nil
}

// NewBolt returns a store over the given bucket, creating it if needed.
func NewBolt(db *bolt.DB, bucket string) (*Bolt, error) {
	if bucket == "" {
		return nil, errors.New("storage: bolt bucket is missing")
	}
	name := []byte(bucket)
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	return &Bolt{db: db, bucket: name}, nil
}

// Get implements Store.
func (b *Bolt) Get(key string) (string, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return ErrNotFound
		}
		v := bk.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("bolt get %q: %w", key, err)
	}
	return string(value), nil
}

// Set implements Store.
func (b *Bolt) Set(key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}
		return bk.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("bolt set %q: %w", key, err)
	}
	return nil
}

// Remove implements Store.
func (b *Bolt) Remove(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		return bk.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("bolt remove %q: %w", key, err)
	}
	return nil
}
