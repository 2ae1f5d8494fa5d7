// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Upstream Types

Submissions as decoded from the form provider:

  - Submission: id, submittedAt, responses
  - Response: questionId, answer (float64, string, or nil)
  - Question: id, title (first page only)

Submission.Clone copies the response slice so corrections never mutate the
fetched batch.

# Activity Types

  - Totals: TA, OT, MCS, 소개, count
  - FunnelStage: stage, value, rate
  - Ranking: first/second tiers with their values
  - ActivityResponse: totals, funnel, recordCount, ranking
  - AlertEvent: type, status, memberId, submittedAt

# Board Types

  - Board → Columns → Cards
  - DefaultBoard returns the three notice columns (important, general, done)

# Request Types

Every board mutation carries a credential:

  - CreateCardRequest: credential, columnId, title, content
  - UpdateCardRequest: credential, title?, content?
  - DeleteCardRequest: credential
  - MoveCardRequest: credential, cardId, fromColumnId, toColumnId, newIndex?

# Constants

Form labels:

	LabelMemberID      = "본인 사번"
	LabelDate          = "날짜"
	LabelTA            = "TA"
	LabelOT            = "OT"
	LabelMCS           = "MCS"
	LabelIntroductions = "소개 (사람수)"

Alert statuses:

	AlertRegistered = "registered"
	AlertUnknown    = "unknown"
*/
package models
