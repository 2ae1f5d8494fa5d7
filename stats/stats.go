// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"math"
	"sort"

	"github.com/danielhkuo/activity-board/fields"
	"github.com/danielhkuo/activity-board/models"
)

// RankingMetrics lists the labels ranked in every activity report
var RankingMetrics = []string{models.LabelOT, models.LabelMCS}

// Filter narrows a batch before aggregation
// Zero values mean "no constraint"
type Filter struct {
	MemberID  *int
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
}

// Apply returns the submissions matching every set constraint
// Dates compare as strings; YYYY-MM-DD sorts chronologically
func (f Filter) Apply(subs []models.Submission, m *fields.Map) []models.Submission {
	out := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if f.MemberID != nil {
			id, ok := fields.MemberID(sub, m)
			if !ok || id != *f.MemberID {
				continue
			}
		}

		if f.StartDate != "" || f.EndDate != "" {
			date := fields.Date(sub, m)
			if date == "" {
				continue
			}
			if f.StartDate != "" && date < f.StartDate {
				continue
			}
			if f.EndDate != "" && date > f.EndDate {
				continue
			}
		}

		out = append(out, sub)
	}
	return out
}

// Aggregate sums the funnel metrics across the batch
func Aggregate(subs []models.Submission, m *fields.Map) models.Totals {
	t := models.Totals{Count: len(subs)}
	for _, sub := range subs {
		t.TA += metric(sub, m, models.LabelTA)
		t.OT += metric(sub, m, models.LabelOT)
		t.MCS += metric(sub, m, models.LabelMCS)
		t.Introductions += metric(sub, m, models.LabelIntroductions)
	}
	return t
}

// Funnel converts totals into stages measured against TA
// The TA stage is always 100; the others are 0 when TA is 0
func Funnel(t models.Totals) []models.FunnelStage {
	return []models.FunnelStage{
		{Stage: models.StageTA, Value: t.TA, Rate: 100},
		{Stage: models.StageOT, Value: t.OT, Rate: rate(t.OT, t.TA)},
		{Stage: models.StageMCS, Value: t.MCS, Rate: rate(t.MCS, t.TA)},
		{Stage: models.StageIntroductions, Value: t.Introductions, Rate: rate(t.Introductions, t.TA)},
	}
}

func rate(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return round1(value / base * 100)
}

// round1 rounds half away from zero to one decimal place
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Rank returns the members holding the two highest distinct sums of label
//
// Sums are per member ID; submissions without an ID are ignored and members
// whose sum is zero or negative are dropped. Every member tied at a score
// shares its tier, and IDs within a tier are ascending.
func Rank(subs []models.Submission, m *fields.Map, label string) models.Ranking {
	sums := make(map[int]float64)
	for _, sub := range subs {
		id, ok := fields.MemberID(sub, m)
		if !ok {
			continue
		}
		sums[id] += metric(sub, m, label)
	}

	type entry struct {
		id  int
		sum float64
	}
	entries := make([]entry, 0, len(sums))
	for id, sum := range sums {
		if sum <= 0 {
			continue
		}
		entries = append(entries, entry{id: id, sum: sum})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].sum != entries[j].sum {
			return entries[i].sum > entries[j].sum
		}
		return entries[i].id < entries[j].id
	})

	r := models.Ranking{First: []int{}, Second: []int{}}
	if len(entries) == 0 {
		return r
	}

	r.FirstValue = entries[0].sum
	for _, e := range entries {
		switch {
		case e.sum == r.FirstValue:
			r.First = append(r.First, e.id)
		case len(r.Second) == 0 || e.sum == r.SecondValue:
			r.SecondValue = e.sum
			r.Second = append(r.Second, e.id)
		}
	}
	return r
}

// Rankings ranks every metric in RankingMetrics
func Rankings(subs []models.Submission, m *fields.Map) map[string]models.Ranking {
	out := make(map[string]models.Ranking, len(RankingMetrics))
	for _, label := range RankingMetrics {
		out[label] = Rank(subs, m, label)
	}
	return out
}

// Members returns every positive member ID in the batch, deduplicated and ascending
func Members(subs []models.Submission, m *fields.Map) []int {
	seen := make(map[int]struct{})
	members := []int{}
	for _, sub := range subs {
		id, ok := fields.MemberID(sub, m)
		if !ok || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	sort.Ints(members)
	return members
}

// Activity builds the full report for a filtered batch
func Activity(subs []models.Submission, m *fields.Map) models.ActivityResponse {
	totals := Aggregate(subs, m)
	return models.ActivityResponse{
		Totals:      totals,
		Funnel:      Funnel(totals),
		RecordCount: len(subs),
		Ranking:     Rankings(subs, m),
	}
}

func metric(sub models.Submission, m *fields.Map, label string) float64 {
	v, ok := fields.ValueOf(sub, m, label)
	if !ok {
		return 0
	}
	return fields.Float(v)
}
