// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pipeline runs one fetch cycle: download every page, apply the
// correction rules, drop excluded members, then raise alerts. Nothing is
// cached between runs; the latest field map is kept in an atomic pointer.
package pipeline
