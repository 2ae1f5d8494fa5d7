// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alerts

import (
	"context"
	"log/slog"
	"sync"

	"github.com/danielhkuo/activity-board/fields"
	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/rules"
)

// Deduplicator raises alerts for submissions in a fetched batch
//
// Registered members produce an alert on every observation. Unknown members
// (neither registered nor excluded) produce one alert ever, tracked by the
// ledger.
type Deduplicator struct {
	mu       sync.Mutex
	notifier Notifier
	ledger   *Ledger
	valid    rules.Set
	excluded rules.Set
}

// NewDeduplicator returns an inert deduplicator when notifier is nil
func NewDeduplicator(notifier Notifier, ledger *Ledger, valid, excluded rules.Set) *Deduplicator {
	return &Deduplicator{
		notifier: notifier,
		ledger:   ledger,
		valid:    valid,
		excluded: excluded,
	}
}

// Enabled reports whether a notification sink is configured
func (d *Deduplicator) Enabled() bool {
	return d != nil && d.notifier != nil
}

// Observe runs the alerting pass over a corrected, filtered batch
// Returns the number of alerts raised
func (d *Deduplicator) Observe(ctx context.Context, subs []models.Submission, m *fields.Map) int {
	if !d.Enabled() {
		return 0
	}

	// one pass at a time so concurrent fetches cannot both alert the same unknown ID
	d.mu.Lock()
	defer d.mu.Unlock()

	sent := 0
	for _, sub := range subs {
		id, ok := fields.MemberID(sub, m)
		if !ok || id <= 0 {
			continue
		}

		switch {
		case d.valid.Contains(id):
			d.notify(ctx, models.AlertRegistered, id, sub)
			sent++
		case d.excluded.Contains(id):
			continue
		case !d.ledger.Contains(id):
			d.notify(ctx, models.AlertUnknown, id, sub)
			d.ledger.Add(ctx, id)
			sent++
			slog.Warn("unknown member observed", "member_id", id, "submission_id", sub.ID)
		}
	}
	return sent
}

func (d *Deduplicator) notify(ctx context.Context, status string, id int, sub models.Submission) {
	d.notifier.Notify(ctx, models.AlertEvent{
		Type:        models.EventNewSubmission,
		Status:      status,
		MemberID:    id,
		SubmittedAt: sub.SubmittedAt,
	})
}
