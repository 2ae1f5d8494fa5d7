// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Field labels as they appear on the activity form
const (
	LabelMemberID      = "본인 사번"
	LabelDate          = "날짜"
	LabelTA            = "TA"
	LabelOT            = "OT"
	LabelMCS           = "MCS"
	LabelIntroductions = "소개 (사람수)"
)

// Funnel stage names
const (
	StageTA            = "TA"
	StageOT            = "OT"
	StageMCS           = "MCS"
	StageIntroductions = "소개"
)

// Alert event constants
const (
	EventNewSubmission = "new_submission"
	AlertRegistered    = "registered"
	AlertUnknown       = "unknown"
)

// DefaultCardTitle is used when a card is created without a title
const DefaultCardTitle = "새 공지"

// Upstream types

type Response struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

type Submission struct {
	ID          string     `json:"id"`
	SubmittedAt string     `json:"submittedAt"`
	Responses   []Response `json:"responses"`
}

// Clone returns a copy whose responses can be modified independently
func (s Submission) Clone() Submission {
	out := s
	out.Responses = make([]Response, len(s.Responses))
	copy(out.Responses, s.Responses)
	return out
}

// DatePrefix returns the YYYY-MM-DD part of the submission timestamp
func (s Submission) DatePrefix() string {
	if len(s.SubmittedAt) < 10 {
		return s.SubmittedAt
	}
	return s.SubmittedAt[:10]
}

type Question struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Activity types

type Totals struct {
	TA            float64 `json:"TA"`
	OT            float64 `json:"OT"`
	MCS           float64 `json:"MCS"`
	Introductions float64 `json:"소개"`
	Count         int     `json:"count"`
}

type FunnelStage struct {
	Stage string  `json:"stage"`
	Value float64 `json:"value"`
	Rate  float64 `json:"rate"`
}

// Ranking holds the top two distinct scores; every member tied at a score
// shares its tier
type Ranking struct {
	First       []int   `json:"first"`
	FirstValue  float64 `json:"firstValue"`
	Second      []int   `json:"second"`
	SecondValue float64 `json:"secondValue"`
}

type ActivityResponse struct {
	Totals      Totals             `json:"totals"`
	Funnel      []FunnelStage      `json:"funnel"`
	RecordCount int                `json:"recordCount"`
	Ranking     map[string]Ranking `json:"ranking"`
}

type MembersResponse struct {
	Members []int `json:"members"`
}

type CheckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AlertEvent is the payload delivered to notification sinks
type AlertEvent struct {
	Type        string `json:"type"`
	Status      string `json:"status"`
	MemberID    int    `json:"memberId"`
	SubmittedAt string `json:"submittedAt"`
}

// Board types

type Card struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

type Board struct {
	Columns []Column `json:"columns"`
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, col := range b.Columns {
		out.Columns[i] = Column{ID: col.ID, Title: col.Title, Cards: make([]Card, len(col.Cards))}
		copy(out.Columns[i].Cards, col.Cards)
	}
	return out
}

// DefaultBoard returns the initial column layout
func DefaultBoard() Board {
	return Board{
		Columns: []Column{
			{ID: "important", Title: "🔴 중요 공지", Cards: []Card{}},
			{ID: "general", Title: "🟡 일반 공지", Cards: []Card{}},
			{ID: "done", Title: "✅ 완료", Cards: []Card{}},
		},
	}
}

// Request types

type CreateCardRequest struct {
	Credential string `json:"credential"`
	ColumnID   string `json:"columnId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type UpdateCardRequest struct {
	Credential string  `json:"credential"`
	Title      *string `json:"title"`
	Content    *string `json:"content"`
}

type DeleteCardRequest struct {
	Credential string `json:"credential"`
}

type MoveCardRequest struct {
	Credential   string `json:"credential"`
	CardID       string `json:"cardId"`
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	NewIndex     *int   `json:"newIndex"`
}

// Response types

type CardResponse struct {
	Success bool `json:"success"`
	Card    Card `json:"card"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
