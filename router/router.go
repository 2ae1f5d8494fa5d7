// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/activity-board/cliparse"
	"github.com/danielhkuo/activity-board/handlers"
	"github.com/danielhkuo/activity-board/middleware"
)

func NewRouter(activityHandler *handlers.ActivityHandler, boardHandler *handlers.BoardHandler, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Activity dashboard (public, refetched on every call)
	mux.HandleFunc("GET /members", middleware.WithLogging(activityHandler.Members))
	mux.HandleFunc("GET /activity", middleware.WithLogging(activityHandler.Activity))
	mux.HandleFunc("GET /activity/export", middleware.WithLogging(activityHandler.Export))
	mux.HandleFunc("POST /check-new-submission", middleware.WithLogging(activityHandler.CheckNewSubmission))

	// Announcement board (reads public, writes require the board credential)
	mux.HandleFunc("GET /board", middleware.WithLogging(boardHandler.GetBoard))
	mux.HandleFunc("POST /board/card", middleware.WithLogging(boardHandler.CreateCard))
	mux.HandleFunc("PUT /board/card/{id}", middleware.WithLogging(boardHandler.UpdateCard))
	mux.HandleFunc("DELETE /board/card/{id}", middleware.WithLogging(boardHandler.DeleteCard))
	mux.HandleFunc("POST /board/move", middleware.WithLogging(boardHandler.MoveCard))

	// Root endpoint
	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("activity-board API v1"))
		})
	}

	return mux
}
