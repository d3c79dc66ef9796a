// Copyright 2026 The Triage Authors
// SPDX-License-Identifier: MIT

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/davetashner/triage/internal/testable"
)

// ErrNotFound is returned by a Backend for a key that has never been written
// or has been deleted.
var ErrNotFound = errors.New("record not found")

// Backend is a flat key-value store of opaque records.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
}

// FileBackend keeps each record in <Dir>/<key>.json. Writes go to a
// temporary file first and are renamed into place, so a crash mid-write
// never leaves a half-written record behind.
type FileBackend struct {
	Dir string
	FS  testable.FileSystem
}

// NewFileBackend returns a backend rooted at dir using the default file system.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{Dir: dir, FS: testable.DefaultFS}
}

func (b *FileBackend) fs() testable.FileSystem {
	if b.FS == nil {
		return testable.DefaultFS
	}
	return b.FS
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

// Get reads a record.
func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := b.fs().ReadFile(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put writes a record atomically.
func (b *FileBackend) Put(key string, data []byte) error {
	if err := b.fs().MkdirAll(b.Dir, 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	final := b.path(key)
	tmp := final + ".tmp"
	if err := b.fs().WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := b.fs().Rename(tmp, final); err != nil {
		_ = b.fs().Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(final), err)
	}
	return nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (b *FileBackend) Delete(key string) error {
	err := b.fs().Remove(b.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryBackend is an in-process Backend, used by tests and by the MCP
// server when no state directory is configured.
type MemoryBackend struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

// Get returns a copy of the record.
func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data.
func (m *MemoryBackend) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes the record.
func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}
