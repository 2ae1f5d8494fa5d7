// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/store"
)

// DefaultMaxCards is the per-column capacity enforced by Create
const DefaultMaxCards = 3

var (
	ErrInvalidColumn = errors.New("invalid column")
	ErrColumnFull    = errors.New("column is full")
	ErrCardNotFound  = errors.New("card not found")
)

// Patch carries the card fields to change; nil fields are left as they are
type Patch struct {
	Title   *string
	Content *string
}

// Service owns the board state
//
// Every mutation holds the lock through persistence, so the saved document
// always reflects a complete sequence of operations.
type Service struct {
	mu       sync.Mutex
	board    models.Board
	store    store.Store[models.Board]
	maxCards int
	now      func() time.Time
}

// Load restores the board from s, starting from the default layout when
// nothing has been saved yet
func Load(ctx context.Context, s store.Store[models.Board], maxCards int) (*Service, error) {
	b, found, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	if !found || len(b.Columns) == 0 {
		b = models.DefaultBoard()
	}
	for i := range b.Columns {
		if b.Columns[i].Cards == nil {
			b.Columns[i].Cards = []models.Card{}
		}
	}
	if maxCards <= 0 {
		maxCards = DefaultMaxCards
	}

	slog.Info("board loaded", "columns", len(b.Columns), "found", found)
	return &Service{
		board:    b,
		store:    s,
		maxCards: maxCards,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Snapshot returns a deep copy of the current board
func (s *Service) Snapshot() models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Create appends a new card to columnID
func (s *Service) Create(ctx context.Context, columnID, title, content string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.column(columnID)
	if col == nil {
		return models.Card{}, ErrInvalidColumn
	}
	if len(col.Cards) >= s.maxCards {
		return models.Card{}, fmt.Errorf("%w: %s holds %d cards", ErrColumnFull, columnID, s.maxCards)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Card{}, fmt.Errorf("failed to generate card ID: %w", err)
	}
	if title == "" {
		title = models.DefaultCardTitle
	}

	card := models.Card{
		ID:        id.String(),
		Title:     title,
		Content:   content,
		CreatedAt: s.now(),
	}
	col.Cards = append(col.Cards, card)

	s.persist(ctx, "create", card.ID)
	return card, nil
}

// Update applies patch to the first card matching cardID
func (s *Service) Update(ctx context.Context, cardID string, patch Patch) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, idx := s.find(cardID)
	if col == nil {
		return models.Card{}, ErrCardNotFound
	}

	card := &col.Cards[idx]
	if patch.Title != nil {
		card.Title = *patch.Title
	}
	if patch.Content != nil {
		card.Content = *patch.Content
	}
	updated := s.now()
	card.UpdatedAt = &updated

	s.persist(ctx, "update", cardID)
	return *card, nil
}

// Delete removes the card from whichever column holds it
func (s *Service) Delete(ctx context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, idx := s.find(cardID)
	if col == nil {
		return ErrCardNotFound
	}
	col.Cards = append(col.Cards[:idx], col.Cards[idx+1:]...)

	s.persist(ctx, "delete", cardID)
	return nil
}

// Move relocates a card between (or within) columns
//
// A nil or out-of-range newIndex appends; a negative one inserts at the
// front. The destination capacity is not checked.
func (s *Service) Move(ctx context.Context, cardID, fromColumnID, toColumnID string, newIndex *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.column(fromColumnID)
	to := s.column(toColumnID)
	if from == nil || to == nil {
		return ErrInvalidColumn
	}

	idx := -1
	for i := range from.Cards {
		if from.Cards[i].ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotFound
	}

	card := from.Cards[idx]
	from.Cards = append(from.Cards[:idx], from.Cards[idx+1:]...)

	pos := len(to.Cards)
	if newIndex != nil && *newIndex < pos {
		pos = max(*newIndex, 0)
	}
	to.Cards = append(to.Cards, models.Card{})
	copy(to.Cards[pos+1:], to.Cards[pos:])
	to.Cards[pos] = card

	s.persist(ctx, "move", cardID)
	return nil
}

func (s *Service) column(id string) *models.Column {
	for i := range s.board.Columns {
		if s.board.Columns[i].ID == id {
			return &s.board.Columns[i]
		}
	}
	return nil
}

func (s *Service) find(cardID string) (*models.Column, int) {
	for i := range s.board.Columns {
		for j := range s.board.Columns[i].Cards {
			if s.board.Columns[i].Cards[j].ID == cardID {
				return &s.board.Columns[i], j
			}
		}
	}
	return nil, -1
}

// persist saves the whole board; failures are logged and the in-memory
// state stays authoritative
func (s *Service) persist(ctx context.Context, op, cardID string) {
	// memory already changed; finish the write even if the client went away
	if err := s.store.Save(context.WithoutCancel(ctx), s.board.Clone()); err != nil {
		slog.Error("failed to save board", "op", op, "card_id", cardID, "error", err)
		return
	}
	slog.Info("board updated", "op", op, "card_id", cardID)
}
