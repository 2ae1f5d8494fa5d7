// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/danielhkuo/activity-board/models"
)

const DefaultTallyBaseURL = "https://api.tally.so"

// TallyClient reads form submissions from the Tally API
type TallyClient struct {
	baseURL    string
	formID     string
	httpClient *http.Client
}

type tallyPage struct {
	Submissions []models.Submission `json:"submissions"`
	Questions   []models.Question   `json:"questions"`
	HasMore     bool                `json:"hasMore"`
}

// NewTallyClient creates a client authenticating with a bearer API key
// An empty baseURL selects DefaultTallyBaseURL
func NewTallyClient(baseURL, formID, apiKey string) *TallyClient {
	if baseURL == "" {
		baseURL = DefaultTallyBaseURL
	}
	return &TallyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		formID:     formID,
		httpClient: bearerClient(apiKey),
	}
}

// FetchPage requests one page; cursor is the 1-based page number
func (c *TallyClient) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	page := 1
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page cursor %q", cursor)
		}
		page = n
	}

	endpoint := fmt.Sprintf("%s/forms/%s/submissions?page=%d", c.baseURL, url.PathEscape(c.formID), page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tally request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &Error{Status: resp.StatusCode, Body: string(body)}
	}

	var data tallyPage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse tally response: %w", err)
	}

	return &Page{
		Submissions: data.Submissions,
		Questions:   data.Questions,
		HasMore:     data.HasMore,
		Next:        strconv.Itoa(page + 1),
	}, nil
}

// bearerClient attaches a static bearer token to every request
func bearerClient(token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = requestTimeout
	return client
}
