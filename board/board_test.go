// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/activity-board/db"
	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/store"
)

func newService(t *testing.T) (*Service, *store.Memory[models.Board]) {
	t.Helper()
	mem := store.NewMemory[models.Board]()
	svc, err := Load(context.Background(), mem, 3)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc, mem
}

func cardIDs(col models.Column) []string {
	ids := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		ids[i] = c.ID
	}
	return ids
}

func columnByID(b models.Board, id string) models.Column {
	for _, col := range b.Columns {
		if col.ID == id {
			return col
		}
	}
	return models.Column{}
}

func TestLoad_DefaultLayout(t *testing.T) {
	svc, _ := newService(t)

	b := svc.Snapshot()
	require.Len(t, b.Columns, 3)
	assert.Equal(t, "important", b.Columns[0].ID)
	assert.Equal(t, "general", b.Columns[1].ID)
	assert.Equal(t, "done", b.Columns[2].ID)
	for _, col := range b.Columns {
		assert.NotNil(t, col.Cards)
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("appends and persists", func(t *testing.T) {
		svc, mem := newService(t)

		card, err := svc.Create(ctx, "general", "Title", "Body")
		require.NoError(t, err)
		assert.NotEmpty(t, card.ID)
		assert.Equal(t, "Title", card.Title)
		assert.False(t, card.CreatedAt.IsZero())
		assert.Nil(t, card.UpdatedAt)

		saved, found, err := mem.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []string{card.ID}, cardIDs(columnByID(saved, "general")))
	})

	t.Run("empty title gets default", func(t *testing.T) {
		svc, _ := newService(t)
		card, err := svc.Create(ctx, "general", "", "")
		require.NoError(t, err)
		assert.Equal(t, models.DefaultCardTitle, card.Title)
	})

	t.Run("unknown column", func(t *testing.T) {
		svc, mem := newService(t)
		_, err := svc.Create(ctx, "archive", "x", "")
		assert.ErrorIs(t, err, ErrInvalidColumn)
		assert.Zero(t, mem.Saves())
	})

	t.Run("full column unchanged", func(t *testing.T) {
		svc, mem := newService(t)
		for i := 0; i < 3; i++ {
			_, err := svc.Create(ctx, "important", fmt.Sprintf("card %d", i), "")
			require.NoError(t, err)
		}
		before := cardIDs(columnByID(svc.Snapshot(), "important"))

		_, err := svc.Create(ctx, "important", "overflow", "")

		assert.ErrorIs(t, err, ErrColumnFull)
		assert.Equal(t, before, cardIDs(columnByID(svc.Snapshot(), "important")))
		assert.Equal(t, 3, mem.Saves())
	})

	t.Run("unique IDs", func(t *testing.T) {
		svc, _ := newService(t)
		a, err := svc.Create(ctx, "general", "a", "")
		require.NoError(t, err)
		b, err := svc.Create(ctx, "done", "b", "")
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	card, err := svc.Create(ctx, "general", "before", "body")
	require.NoError(t, err)

	title := "after"
	updated, err := svc.Update(ctx, card.ID, Patch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "body", updated.Content, "absent fields are kept")
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, card.CreatedAt, updated.CreatedAt)

	empty := ""
	updated, err = svc.Update(ctx, card.ID, Patch{Content: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Content)

	_, err = svc.Update(ctx, "missing", Patch{Title: &title})
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a, _ := svc.Create(ctx, "done", "a", "")
	b, _ := svc.Create(ctx, "done", "b", "")

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Equal(t, []string{b.ID}, cardIDs(columnByID(svc.Snapshot(), "done")))

	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrCardNotFound)
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	idx := func(v int) *int { return &v }

	setup := func(t *testing.T) (*Service, []string) {
		svc, _ := newService(t)
		var ids []string
		for _, title := range []string{"a", "b", "c"} {
			c, err := svc.Create(ctx, "general", title, "")
			require.NoError(t, err)
			ids = append(ids, c.ID)
		}
		return svc, ids
	}

	t.Run("default appends", func(t *testing.T) {
		svc, ids := setup(t)
		extra, _ := svc.Create(ctx, "done", "x", "")

		require.NoError(t, svc.Move(ctx, ids[0], "general", "done", nil))

		b := svc.Snapshot()
		assert.Equal(t, []string{ids[1], ids[2]}, cardIDs(columnByID(b, "general")))
		assert.Equal(t, []string{extra.ID, ids[0]}, cardIDs(columnByID(b, "done")))
	})

	t.Run("index beyond length appends", func(t *testing.T) {
		svc, ids := setup(t)
		require.NoError(t, svc.Move(ctx, ids[0], "general", "done", idx(99)))
		assert.Equal(t, []string{ids[0]}, cardIDs(columnByID(svc.Snapshot(), "done")))
	})

	t.Run("negative index inserts at front", func(t *testing.T) {
		svc, ids := setup(t)
		require.NoError(t, svc.Move(ctx, ids[2], "general", "general", idx(-5)))
		assert.Equal(t, []string{ids[2], ids[0], ids[1]}, cardIDs(columnByID(svc.Snapshot(), "general")))
	})

	t.Run("reorder within column", func(t *testing.T) {
		svc, ids := setup(t)
		require.NoError(t, svc.Move(ctx, ids[0], "general", "general", idx(1)))
		assert.Equal(t, []string{ids[1], ids[0], ids[2]}, cardIDs(columnByID(svc.Snapshot(), "general")))
	})

	t.Run("ignores destination capacity", func(t *testing.T) {
		svc, ids := setup(t)
		other, _ := svc.Create(ctx, "done", "x", "")
		require.NoError(t, svc.Move(ctx, other.ID, "done", "general", idx(0)))
		assert.Equal(t, []string{other.ID, ids[0], ids[1], ids[2]}, cardIDs(columnByID(svc.Snapshot(), "general")))
	})

	t.Run("errors", func(t *testing.T) {
		svc, ids := setup(t)
		assert.ErrorIs(t, svc.Move(ctx, ids[0], "nope", "done", nil), ErrInvalidColumn)
		assert.ErrorIs(t, svc.Move(ctx, ids[0], "general", "nope", nil), ErrInvalidColumn)
		assert.ErrorIs(t, svc.Move(ctx, ids[0], "done", "general", nil), ErrCardNotFound)
		assert.ErrorIs(t, svc.Move(ctx, "missing", "general", "done", nil), ErrCardNotFound)
	})
}

func TestPersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(t)
	mem.SaveFn = func(models.Board) error { return errors.New("disk full") }

	card, err := svc.Create(ctx, "general", "kept", "")
	require.NoError(t, err)
	assert.Equal(t, []string{card.ID}, cardIDs(columnByID(svc.Snapshot(), "general")))
}

func TestSnapshotIsolated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Create(ctx, "general", "original", "")
	require.NoError(t, err)

	snap := svc.Snapshot()
	snap.Columns[1].Cards[0].Title = "mutated"

	assert.Equal(t, "original", svc.Snapshot().Columns[1].Cards[0].Title)
}

func TestReloadFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kanban-data.json")

	first, err := Load(ctx, store.NewFile[models.Board](path), 3)
	require.NoError(t, err)
	card, err := first.Create(ctx, "important", "persisted", "")
	require.NoError(t, err)

	second, err := Load(ctx, store.NewFile[models.Board](path), 3)
	require.NoError(t, err)

	got := columnByID(second.Snapshot(), "important")
	require.Len(t, got.Cards, 1)
	assert.Equal(t, card.ID, got.Cards[0].ID)
	assert.True(t, card.CreatedAt.Equal(got.Cards[0].CreatedAt))
}

func TestConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, "general", fmt.Sprintf("card %d", i), "")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	created, full := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrColumnFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 3, created)
	assert.Equal(t, 7, full)
	assert.Len(t, columnByID(svc.Snapshot(), "general").Cards, 3)
}

func TestCreate_PersistsAfterClientCancel(t *testing.T) {
	conn, err := db.Open(db.TypeSQLite, "file:"+filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.CreateSchema(conn))

	doc := store.NewDocument[models.Board](conn, "board")
	svc, err := Load(context.Background(), doc, 3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	card, err := svc.Create(ctx, "important", "공지", "")
	require.NoError(t, err)

	reloaded, err := Load(context.Background(), doc, 3)
	require.NoError(t, err)
	cards := columnByID(reloaded.Snapshot(), "important").Cards
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)
}
