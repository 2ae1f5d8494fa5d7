// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"log/slog"

	"github.com/danielhkuo/activity-board/fields"
	"github.com/danielhkuo/activity-board/models"
)

// ApplyCorrections returns corrected copies of subs
// Rules run in declared order and each sees the output of the previous one
func ApplyCorrections(subs []models.Submission, corrections []Correction, m *fields.Map) []models.Submission {
	active := make([]Correction, 0, len(corrections))
	for _, c := range corrections {
		if !m.Has(c.Field) {
			slog.Warn("correction skipped, field not in form", "field", c.Field, "wrong", c.Wrong)
			continue
		}
		active = append(active, c)
	}

	out := make([]models.Submission, len(subs))
	applied := 0
	for i, sub := range subs {
		sub = sub.Clone()
		for _, c := range active {
			if c.Date != "" && sub.DatePrefix() != c.Date {
				continue
			}
			current, ok := fields.ValueOf(sub, m, c.Field)
			if !ok || !fields.Equal(current, c.Wrong) {
				continue
			}
			fields.Set(&sub, m, c.Field, c.Replace)
			applied++
		}
		out[i] = sub
	}

	if applied > 0 {
		slog.Info("corrections applied", "count", applied)
	}
	return out
}

// ExcludeKnownBad drops submissions whose member ID is in excluded
func ExcludeKnownBad(subs []models.Submission, excluded Set, m *fields.Map) ([]models.Submission, int) {
	out := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if id, ok := fields.MemberID(sub, m); ok && excluded.Contains(id) {
			continue
		}
		out = append(out, sub)
	}

	removed := len(subs) - len(out)
	if removed > 0 {
		slog.Info("excluded submissions", "removed", removed)
	}
	return out, removed
}
