// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/activity-board/cliparse"
	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/upstream"
)

// TestPassword is the board credential used by GetTestConfig
const TestPassword = "test-board-password"

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		Source:            cliparse.SourceTally,
		TallyAPIKey:       "test-key",
		TallyFormID:       "test-form",
		FetchTimeout:      5 * time.Second,
		DatabaseType:      "sqlite",
		BoardPassword:     TestPassword,
		MaxCardsPerColumn: 3,
	}
}

// Questions is the form layout used by Row
var Questions = []models.Question{
	{ID: "q_member", Title: models.LabelMemberID},
	{ID: "q_date", Title: models.LabelDate},
	{ID: "q_ta", Title: models.LabelTA},
	{ID: "q_ot", Title: models.LabelOT},
	{ID: "q_mcs", Title: models.LabelMCS},
	{ID: "q_intro", Title: models.LabelIntroductions},
}

// Row describes one submission in terms of the Questions layout
type Row struct {
	MemberID      any
	Date          string
	TA            float64
	OT            float64
	MCS           float64
	Introductions float64
}

// Submissions turns rows into upstream submissions with sequential IDs
func Submissions(rows ...Row) []models.Submission {
	subs := make([]models.Submission, len(rows))
	for i, r := range rows {
		subs[i] = models.Submission{
			ID:          "sub" + strconv.Itoa(i+1),
			SubmittedAt: r.Date + "T09:00:00.000Z",
			Responses: []models.Response{
				{QuestionID: "q_member", Answer: r.MemberID},
				{QuestionID: "q_date", Answer: r.Date},
				{QuestionID: "q_ta", Answer: r.TA},
				{QuestionID: "q_ot", Answer: r.OT},
				{QuestionID: "q_mcs", Answer: r.MCS},
				{QuestionID: "q_intro", Answer: r.Introductions},
			},
		}
	}
	return subs
}

// FakeSource serves a fixed submission set one page at a time
type FakeSource struct {
	mu        sync.Mutex
	Questions []models.Question
	Pages     [][]models.Submission
	Err       error
	calls     int
}

// NewFakeSource returns a source with the Questions layout and one page per argument
func NewFakeSource(pages ...[]models.Submission) *FakeSource {
	return &FakeSource{Questions: Questions, Pages: pages}
}

func (f *FakeSource) FetchPage(ctx context.Context, cursor string) (*upstream.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.Err != nil {
		return nil, f.Err
	}

	idx := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, fmt.Errorf("bad cursor %q", cursor)
		}
		idx = n
	}

	page := &upstream.Page{HasMore: idx+1 < len(f.Pages), Next: strconv.Itoa(idx + 1)}
	if idx == 0 {
		page.Questions = f.Questions
	}
	if idx < len(f.Pages) {
		page.Submissions = f.Pages[idx]
	}
	return page, nil
}

// SetPages replaces the served data
func (f *FakeSource) SetPages(pages ...[]models.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Pages = pages
}

// Calls returns how many pages were requested
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
