// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package board implements the announcement board.

The board has three fixed columns (important, general, done). Cards are
created with a UUIDv7 identifier, edited in place, moved between columns
and deleted. Create enforces a per-column capacity; Move does not.

Each mutation saves the whole board through a store.Store before returning.
A failed save is logged and the mutation still succeeds.

Credentials are checked by the HTTP layer before any method here is called.
*/
package board
