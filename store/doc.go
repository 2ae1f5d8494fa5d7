// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists whole JSON documents.

Store[T] has read-whole/write-whole semantics. Three implementations:

  - File: indented JSON file, replaced atomically via temp file + rename
  - Document: one row of the document table (sqlite or postgres, see db)
  - Memory: in-process, for tests

Callers own their in-memory copy; a Store is only consulted at startup and
written after each mutation.
*/
package store
