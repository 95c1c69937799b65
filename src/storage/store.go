// MIT License
//
// Copyright (c) 2024 talust-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/storage/store.go

// Package storage is the chain-state store: a key-ordered byte-string
// key-value store holding account records and settled transaction outputs.
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
)

// Reader is the read-only view handed to validators. Absent keys are
// reported as a nil value with a nil error.
type Reader interface {
	Get(key []byte) ([]byte, error)
}

// ChainStore wraps a LevelDB instance with thread safety.
type ChainStore struct {
	db  *leveldb.DB
	mu  sync.RWMutex
	log *zap.Logger
}

var _ Reader = (*ChainStore)(nil)

// Open opens (creating if missing) the chain-state database at path.
func Open(path string, log *zap.Logger) (*ChainStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open chain store at %s: %w", path, err)
	}
	log.Info("chain store opened", zap.String("path", path))
	return &ChainStore{db: db, log: log}, nil
}

// Get returns the value stored under key, or nil when the key is absent.
func (s *ChainStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return value, err
}

// Put stores value under key.
func (s *ChainStore) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Put(key, value, nil)
}

// Delete removes key.
func (s *ChainStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(key, nil)
}

// Has reports whether key is present.
func (s *ChainStore) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Has(key, nil)
}

// Close releases the underlying database.
func (s *ChainStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
