// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/activity-board/cliparse"
	"github.com/danielhkuo/activity-board/middleware"
	"github.com/danielhkuo/activity-board/models"
	"github.com/danielhkuo/activity-board/pipeline"
	"github.com/danielhkuo/activity-board/report"
	"github.com/danielhkuo/activity-board/stats"
)

type ActivityHandler struct {
	pipeline *pipeline.Pipeline
	cfg      cliparse.Config
}

func NewActivityHandler(p *pipeline.Pipeline, cfg cliparse.Config) *ActivityHandler {
	return &ActivityHandler{pipeline: p, cfg: cfg}
}

// Members handles GET /members
// Returns every member ID seen in the cleaned batch, ascending
func (h *ActivityHandler) Members(w http.ResponseWriter, r *http.Request) {
	res, err := h.pipeline.Run(r.Context())
	if err != nil {
		slog.Error("failed to fetch submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MembersResponse{
		Members: stats.Members(res.Submissions, res.Fields),
	})
}

// Activity handles GET /activity?memberId=&startDate=&endDate=
func (h *ActivityHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activity, ok := h.buildActivity(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, activity)
}

// Export handles GET /activity/export with the same filters as Activity
func (h *ActivityHandler) Export(w http.ResponseWriter, r *http.Request) {
	activity, ok := h.buildActivity(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteActivity(&buf, activity); err != nil {
		slog.Error("failed to render activity workbook", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export activity data")
		return
	}

	filename := fmt.Sprintf("activity-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

// CheckNewSubmission handles POST /check-new-submission
// Runs one fetch cycle so the alerting pass sees the latest submissions
func (h *ActivityHandler) CheckNewSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := h.pipeline.Run(r.Context())
	if err != nil {
		slog.Error("failed to fetch submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check submissions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckResponse{
		Success: true,
		Message: fmt.Sprintf("checked %d submissions, %d alerts raised", len(res.Submissions), res.Alerts),
	})
}

// buildActivity runs the pipeline and aggregates the filtered batch
// Writes the error response itself and returns false on failure
func (h *ActivityHandler) buildActivity(w http.ResponseWriter, r *http.Request) (models.ActivityResponse, bool) {
	filter, err := parseFilter(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return models.ActivityResponse{}, false
	}

	res, err := h.pipeline.Run(r.Context())
	if err != nil {
		slog.Error("failed to fetch submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch activity data")
		return models.ActivityResponse{}, false
	}

	subs := filter.Apply(res.Submissions, res.Fields)
	return stats.Activity(subs, res.Fields), true
}

func parseFilter(r *http.Request) (stats.Filter, error) {
	q := r.URL.Query()
	var f stats.Filter

	if v := q.Get("memberId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("memberId must be an integer")
		}
		f.MemberID = &id
	}

	for _, p := range []struct {
		name string
		dst  *string
	}{
		{"startDate", &f.StartDate},
		{"endDate", &f.EndDate},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return f, fmt.Errorf("%s must be YYYY-MM-DD", p.name)
		}
		*p.dst = v
	}

	return f, nil
}
