// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/activity-board/fields"
	"github.com/danielhkuo/activity-board/models"
)

// ErrUpstream matches every *Error via errors.Is
var ErrUpstream = errors.New("upstream error")

// Error is returned when the provider answers a page request with a non-2xx status
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream error: status=%d body=%s", e.Status, e.Body)
}

func (e *Error) Is(target error) bool {
	return target == ErrUpstream
}

// Page is one page of submissions
// Questions is only expected on the first page
type Page struct {
	Submissions []models.Submission
	Questions   []models.Question
	HasMore     bool
	Next        string
}

// Source is a paginated submission provider
// cursor is empty for the first page and Page.Next afterwards
type Source interface {
	FetchPage(ctx context.Context, cursor string) (*Page, error)
}

// FetchAll pulls every page in order
// The returned map is nil when the first page carried no question listing
func FetchAll(ctx context.Context, src Source) ([]models.Submission, *fields.Map, error) {
	var (
		all    []models.Submission
		fm     *fields.Map
		cursor string
	)

	for first := true; ; first = false {
		page, err := src.FetchPage(ctx, cursor)
		if err != nil {
			return nil, nil, err
		}

		if first && len(page.Questions) > 0 {
			fm = fields.NewMap(page.Questions)
			slog.Debug("question map", "questions", fm.Labels())
		}

		all = append(all, page.Submissions...)
		if !page.HasMore {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("fetch abandoned: %w", err)
		}
		cursor = page.Next
	}

	slog.Info("submissions loaded", "total", len(all))
	return all, fm, nil
}
