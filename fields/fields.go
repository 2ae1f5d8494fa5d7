// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fields

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/activity-board/models"
)

// Map is an immutable questionID -> label snapshot built from one fetch
type Map struct {
	order  []string
	labels map[string]string
}

// NewMap builds a snapshot from the question listing, keeping its order so
// label lookups resolve to the first matching question
func NewMap(questions []models.Question) *Map {
	m := &Map{
		order:  make([]string, 0, len(questions)),
		labels: make(map[string]string, len(questions)),
	}
	for _, q := range questions {
		if _, dup := m.labels[q.ID]; dup {
			continue
		}
		m.order = append(m.order, q.ID)
		m.labels[q.ID] = normalize(q.Title)
	}
	return m
}

// Len returns the number of mapped questions
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Label resolves a question ID to its label
func (m *Map) Label(questionID string) (string, bool) {
	if m == nil {
		return "", false
	}
	label, ok := m.labels[questionID]
	return label, ok
}

// QuestionID returns the first question whose label equals label
func (m *Map) QuestionID(label string) (string, bool) {
	if m == nil {
		return "", false
	}
	label = normalize(label)
	for _, id := range m.order {
		if m.labels[id] == label {
			return id, true
		}
	}
	return "", false
}

// Has reports whether any question carries the label
func (m *Map) Has(label string) bool {
	_, ok := m.QuestionID(label)
	return ok
}

// Labels returns id -> label pairs, mainly for logging
func (m *Map) Labels() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for id, label := range m.labels {
		out[id] = label
	}
	return out
}

// ValueOf returns the raw answer a submission gave for label
func ValueOf(sub models.Submission, m *Map, label string) (any, bool) {
	qid, ok := m.QuestionID(label)
	if !ok {
		return nil, false
	}
	for _, r := range sub.Responses {
		if r.QuestionID == qid {
			return r.Answer, true
		}
	}
	return nil, false
}

// Set overwrites the answer for label in place
// Returns false when the label is unmapped or the submission has no answer for it
func Set(sub *models.Submission, m *Map, label string, v any) bool {
	qid, ok := m.QuestionID(label)
	if !ok {
		return false
	}
	for i := range sub.Responses {
		if sub.Responses[i].QuestionID == qid {
			sub.Responses[i].Answer = v
			return true
		}
	}
	return false
}

// MemberID resolves the member identifier of a submission
func MemberID(sub models.Submission, m *Map) (int, bool) {
	v, ok := ValueOf(sub, m, models.LabelMemberID)
	if !ok {
		return 0, false
	}
	return Int(v)
}

// Date resolves the activity date of a submission
func Date(sub models.Submission, m *Map) string {
	v, ok := ValueOf(sub, m, models.LabelDate)
	if !ok {
		return ""
	}
	return String(v)
}

// Float coerces an answer to a number; missing or non-numeric answers are 0
func Float(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int coerces an answer to an integer
func Int(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// String renders an answer as text
func String(v any) string {
	s, _ := canonical(v)
	return s
}

// Equal compares two answers, treating 12345 and "12345" as the same value
func Equal(a, b any) bool {
	ca, okA := canonical(a)
	cb, okB := canonical(b)
	if !okA || !okB {
		return false
	}
	return ca == cb
}

func canonical(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return normalize(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// normalize folds labels to NFC so decomposed Hangul matches composed text
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
