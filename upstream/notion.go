// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/activity-board/models"
)

const (
	DefaultNotionBaseURL = "https://api.notion.com"
	notionVersion        = "2022-06-28"
	notionPageSize       = 100
	requestTimeout       = 30 * time.Second
)

// NotionClient reads activity rows from a Notion database
// Each database property becomes a question: property ID -> property name
type NotionClient struct {
	baseURL    string
	databaseID string
	httpClient *http.Client
}

type notionQuery struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size"`
}

type notionResult struct {
	Results    []notionRow `json:"results"`
	HasMore    bool        `json:"has_more"`
	NextCursor *string     `json:"next_cursor"`
}

type notionRow struct {
	ID          string                    `json:"id"`
	CreatedTime string                    `json:"created_time"`
	Properties  map[string]notionProperty `json:"properties"`
}

type notionText struct {
	PlainText string `json:"plain_text"`
}

type notionProperty struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Number   *float64     `json:"number"`
	Title    []notionText `json:"title"`
	RichText []notionText `json:"rich_text"`
	Date     *struct {
		Start string `json:"start"`
	} `json:"date"`
	Select *struct {
		Name string `json:"name"`
	} `json:"select"`
	Formula *struct {
		Type   string   `json:"type"`
		Number *float64 `json:"number"`
		String *string  `json:"string"`
	} `json:"formula"`
}

// NewNotionClient queries one database; an empty baseURL selects DefaultNotionBaseURL
func NewNotionClient(baseURL, databaseID, apiKey string) *NotionClient {
	if baseURL == "" {
		baseURL = DefaultNotionBaseURL
	}
	return &NotionClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		databaseID: databaseID,
		httpClient: bearerClient(apiKey),
	}
}

// FetchPage queries one page of the database; cursor is Notion's next_cursor
func (c *NotionClient) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	body, err := json.Marshal(notionQuery{StartCursor: cursor, PageSize: notionPageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, url.PathEscape(c.databaseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &Error{Status: resp.StatusCode, Body: string(respBody)}
	}

	var data notionResult
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse notion response: %w", err)
	}

	page := &Page{
		Submissions: make([]models.Submission, 0, len(data.Results)),
		HasMore:     data.HasMore && data.NextCursor != nil,
	}
	if data.NextCursor != nil {
		page.Next = *data.NextCursor
	}

	// first page: derive the question listing from the first row's schema
	if cursor == "" && len(data.Results) > 0 {
		page.Questions = notionQuestions(data.Results[0])
	}

	for _, row := range data.Results {
		page.Submissions = append(page.Submissions, row.submission())
	}
	return page, nil
}

// notionQuestions lists properties sorted by name for a stable order
func notionQuestions(row notionRow) []models.Question {
	names := make([]string, 0, len(row.Properties))
	for name := range row.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	questions := make([]models.Question, 0, len(names))
	for _, name := range names {
		questions = append(questions, models.Question{ID: row.Properties[name].ID, Title: name})
	}
	return questions
}

func (r notionRow) submission() models.Submission {
	sub := models.Submission{
		ID:          r.ID,
		SubmittedAt: r.CreatedTime,
		Responses:   make([]models.Response, 0, len(r.Properties)),
	}
	for _, prop := range r.Properties {
		sub.Responses = append(sub.Responses, models.Response{QuestionID: prop.ID, Answer: prop.value()})
	}
	sort.Slice(sub.Responses, func(i, j int) bool {
		return sub.Responses[i].QuestionID < sub.Responses[j].QuestionID
	})
	return sub
}

func (p notionProperty) value() any {
	switch p.Type {
	case "number":
		if p.Number != nil {
			return *p.Number
		}
	case "title":
		return joinText(p.Title)
	case "rich_text":
		return joinText(p.RichText)
	case "date":
		if p.Date != nil && len(p.Date.Start) >= 10 {
			return p.Date.Start[:10]
		}
	case "select":
		if p.Select != nil {
			return p.Select.Name
		}
	case "formula":
		if p.Formula == nil {
			return nil
		}
		if p.Formula.Number != nil {
			return *p.Formula.Number
		}
		if p.Formula.String != nil {
			return *p.Formula.String
		}
	}
	return nil
}

func joinText(parts []notionText) string {
	var b strings.Builder
	for _, t := range parts {
		b.WriteString(t.PlainText)
	}
	return b.String()
}
