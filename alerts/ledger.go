// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/danielhkuo/activity-board/store"
)

// Ledger remembers which unknown member IDs were already alerted
// Entries are never removed
type Ledger struct {
	mu    sync.Mutex
	ids   map[int]struct{}
	store store.Store[[]int]
}

// LoadLedger reads the persisted ledger; a missing document starts empty
func LoadLedger(ctx context.Context, s store.Store[[]int]) (*Ledger, error) {
	ids, _, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load alert ledger: %w", err)
	}

	l := &Ledger{ids: make(map[int]struct{}, len(ids)), store: s}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	slog.Info("alert ledger loaded", "entries", len(l.ids))
	return l, nil
}

func (l *Ledger) Contains(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.ids[id]
	return ok
}

// Add records id and persists the ledger before returning
// Returns false when id was already present
// A failed save is logged; the entry stays in memory
func (l *Ledger) Add(ctx context.Context, id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ids[id]; ok {
		return false
	}
	l.ids[id] = struct{}{}

	if err := l.store.Save(context.WithoutCancel(ctx), l.sortedLocked()); err != nil {
		slog.Error("failed to save alert ledger", "member_id", id, "error", err)
	}
	return true
}

// IDs returns the recorded IDs in ascending order
func (l *Ledger) IDs() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortedLocked()
}

func (l *Ledger) sortedLocked() []int {
	out := make([]int, 0, len(l.ids))
	for id := range l.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
