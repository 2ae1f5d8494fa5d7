// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the activity board API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(activityHandler, boardHandler, cfg)
	server := http.Server{Handler: middleware.CORS(mux)}

# Endpoints

Health:

	GET /health

Activity (public):

	GET  /members              - Member IDs seen in the submissions
	GET  /activity             - Totals, funnel and rankings
	GET  /activity/export      - Same figures as an XLSX workbook
	POST /check-new-submission - Run one fetch and alert cycle

Board (reads public, writes require the board credential):

	GET    /board           - Full board
	POST   /board/card      - Create card
	PUT    /board/card/{id} - Edit card
	DELETE /board/card/{id} - Delete card
	POST   /board/move      - Move card between columns

Root:

	GET / - Files from STATIC_DIR when set, otherwise an API banner

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
