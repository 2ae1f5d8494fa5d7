// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package upstream fetches form submissions from the configured provider.

# Sources

  - TallyClient: GET /forms/{id}/submissions?page=N, page 1 lists questions
  - NotionClient: POST /v1/databases/{id}/query with start_cursor; property
    IDs act as question IDs and property names as labels

Both authenticate with a static bearer token (golang.org/x/oauth2).

# Fetching

	subs, fm, err := upstream.FetchAll(ctx, src)

FetchAll walks pages until HasMore is false. A non-2xx page aborts the whole
fetch with *Error (status and body); nothing fetched so far is returned.
*/
package upstream
