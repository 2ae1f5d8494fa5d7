// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store reads and writes one whole JSON document
// Load reports found=false when nothing has been saved yet
type Store[T any] interface {
	Load(ctx context.Context) (value T, found bool, err error)
	Save(ctx context.Context, value T) error
}

// File stores the document as an indented JSON file
type File[T any] struct {
	path string
	mu   sync.Mutex
}

func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

func (f *File[T]) Path() string {
	return f.path
}

func (f *File[T]) Load(ctx context.Context) (T, bool, error) {
	var value T

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	return value, true, nil
}

// Save writes to a temp file and renames it over the target
func (f *File[T]) Save(ctx context.Context, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Document stores the value as a named row in the document table
type Document[T any] struct {
	db   *sql.DB
	name string
}

func NewDocument[T any](db *sql.DB, name string) *Document[T] {
	return &Document[T]{db: db, name: name}
}

func (d *Document[T]) Load(ctx context.Context) (T, bool, error) {
	var value T
	var payload string

	err := d.db.QueryRowContext(ctx, `
		SELECT payload FROM document WHERE name = $1
	`, d.name).Scan(&payload)
	if err == sql.ErrNoRows {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("failed to query document %s: %w", d.name, err)
	}
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return value, false, fmt.Errorf("failed to decode document %s: %w", d.name, err)
	}
	return value, true, nil
}

func (d *Document[T]) Save(ctx context.Context, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", d.name, err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO document (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`, d.name, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", d.name, err)
	}
	return nil
}

// Memory keeps the document in process; used in tests
type Memory[T any] struct {
	mu     sync.Mutex
	data   []byte
	saves  int
	SaveFn func(T) error
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{}
}

func (m *Memory[T]) Load(ctx context.Context) (T, bool, error) {
	var value T

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return value, false, nil
	}
	if err := json.Unmarshal(m.data, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

func (m *Memory[T]) Save(ctx context.Context, value T) error {
	if m.SaveFn != nil {
		if err := m.SaveFn(value); err != nil {
			return err
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (m *Memory[T]) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
