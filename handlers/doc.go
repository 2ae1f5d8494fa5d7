// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the activity board API.

# Handler Types

Each handler is a struct with its service and config dependencies:

  - ActivityHandler: members, activity figures, XLSX export, alert checks
  - BoardHandler: announcement board reads and credential-gated writes

Handlers are created via constructor functions:

	activityHandler := handlers.NewActivityHandler(pipeline, cfg)
	boardHandler := handlers.NewBoardHandler(boardService, cfg)

# Activity

Every activity request runs a full fetch cycle (no caching):

	GET  /members              → Members
	GET  /activity             → Activity (memberId, startDate, endDate filters)
	GET  /activity/export      → Export (same filters, XLSX)
	POST /check-new-submission → CheckNewSubmission

An upstream failure returns 500 with a generic message; the provider's
response body is only logged.

# Board

	GET    /board           → GetBoard
	POST   /board/card      → CreateCard
	PUT    /board/card/{id} → UpdateCard
	DELETE /board/card/{id} → DeleteCard
	POST   /board/move      → MoveCard

Writes carry {"credential": "..."} in the JSON body. The credential is
checked before the board is touched.

# Error Responses

	400 Bad Request   invalid JSON, bad filter, unknown column, full column
	401 Unauthorized  credential mismatch
	404 Not Found     unknown card
	500               upstream or unexpected failure
*/
package handlers
