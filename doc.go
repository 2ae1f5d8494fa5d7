// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the activity board server.

The server aggregates sales-activity form submissions (TA, OT, MCS and
introductions) from Tally or a Notion database, cleans them with a set of
correction and exclusion rules, and serves funnel figures and member
rankings. It also hosts a small announcement board and raises alerts when
submissions arrive from registered or unknown member IDs.

# Starting the Server

	BOARD_PASSWORD=... TALLY_API_KEY=... go run .

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - BOARD_PASSWORD: credential for board writes
  - TALLY_API_KEY, or NOTION_API_KEY and NOTION_DATABASE_ID with SOURCE=notion

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - RULES_FILE (-rules): correction, exclusion and member registry YAML
  - DATA_DIR (-data-dir): JSON document directory (default: data)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): store documents in SQLite or PostgreSQL
  - WEBHOOK_URL, MQTT_BROKER_URL: alert sinks
  - LOG_LEVEL, LOG_FORMAT: slog handler selection

# Architecture

  - upstream: paginated Tally and Notion clients
  - fields: question ID to label resolution and answer coercion
  - rules: correction and exclusion rules
  - alerts: notifiers, alert ledger, deduplication
  - pipeline: fetch, correct, exclude, alert
  - stats: totals, funnel, rankings
  - board: announcement board state
  - store, db: document persistence
  - report: XLSX export
  - handlers, router, middleware: HTTP layer
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
