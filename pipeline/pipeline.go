// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/activity-board/alerts"
	"github.com/danielhkuo/activity-board/fields"
	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/rules"
	"github.com/danielhkuo/activity-board/upstream"
)

// DefaultTimeout bounds one paginated fetch
const DefaultTimeout = 60 * time.Second

// Result is one cleaned batch
type Result struct {
	Submissions []models.Submission
	Fields      *fields.Map
	Fetched     int
	Excluded    int
	Alerts      int
}

// Pipeline fetches, corrects, filters and alerts on every Run
type Pipeline struct {
	source  upstream.Source
	rules   *rules.Config
	dedup   *alerts.Deduplicator
	timeout time.Duration
	fields  atomic.Pointer[fields.Map]
}

// New wires a pipeline; a nil rules config means no rules and a nil
// deduplicator disables alerting
func New(source upstream.Source, cfg *rules.Config, dedup *alerts.Deduplicator, timeout time.Duration) *Pipeline {
	if cfg == nil {
		cfg = rules.Empty()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		source:  source,
		rules:   cfg,
		dedup:   dedup,
		timeout: timeout,
	}
}

// Fields returns the latest field map, or nil before the first successful fetch
func (p *Pipeline) Fields() *fields.Map {
	return p.fields.Load()
}

// Run performs one full fetch cycle
// Upstream failures return an error wrapping upstream.ErrUpstream
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, m, err := upstream.FetchAll(fetchCtx, p.source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	// a fetch without a question listing keeps the previous map
	if m != nil {
		p.fields.Store(m)
	}
	m = p.fields.Load()
	if m == nil {
		slog.Warn("no field map available; every field lookup will miss")
	}

	corrected := rules.ApplyCorrections(raw, p.rules.Corrections, m)
	kept, excluded := rules.ExcludeKnownBad(corrected, p.rules.Excluded, m)
	sent := p.dedup.Observe(ctx, kept, m)

	slog.Info("submissions loaded",
		"fetched", len(raw),
		"excluded", excluded,
		"alerts", sent,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		Submissions: kept,
		Fields:      m,
		Fetched:     len(raw),
		Excluded:    excluded,
		Alerts:      sent,
	}, nil
}
