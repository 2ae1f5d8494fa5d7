// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/activity-board/auth"
	"github.com/danielhkuo/activity-board/board"
	"github.com/danielhkuo/activity-board/cliparse"
	"github.com/danielhkuo/activity-board/middleware"
	"github.com/danielhkuo/activity-board/models"
)

type BoardHandler struct {
	board *board.Service
	cfg   cliparse.Config
}

func NewBoardHandler(b *board.Service, cfg cliparse.Config) *BoardHandler {
	return &BoardHandler{board: b, cfg: cfg}
}

// GetBoard handles GET /board
// Read access needs no credential
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.board.Snapshot())
}

// CreateCard handles POST /board/card
func (h *BoardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !h.authorize(w, req.Credential) {
		return
	}

	card, err := h.board.Create(r.Context(), req.ColumnID, req.Title, req.Content)
	if err != nil {
		writeBoardError(w, err)
		return
	}

	slog.Info("card created", "card_id", card.ID, "column_id", req.ColumnID)
	middleware.JSONResponse(w, http.StatusOK, models.CardResponse{Success: true, Card: card})
}

// UpdateCard handles PUT /board/card/{id}
// Only fields present in the body change
func (h *BoardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "card id is required")
		return
	}

	var req models.UpdateCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !h.authorize(w, req.Credential) {
		return
	}

	card, err := h.board.Update(r.Context(), cardID, board.Patch{Title: req.Title, Content: req.Content})
	if err != nil {
		writeBoardError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CardResponse{Success: true, Card: card})
}

// DeleteCard handles DELETE /board/card/{id}
func (h *BoardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "card id is required")
		return
	}

	var req models.DeleteCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !h.authorize(w, req.Credential) {
		return
	}

	if err := h.board.Delete(r.Context(), cardID); err != nil {
		writeBoardError(w, err)
		return
	}

	slog.Info("card deleted", "card_id", cardID)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// MoveCard handles POST /board/move
func (h *BoardHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	var req models.MoveCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !h.authorize(w, req.Credential) {
		return
	}

	if err := h.board.Move(r.Context(), req.CardID, req.FromColumnID, req.ToColumnID, req.NewIndex); err != nil {
		writeBoardError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *BoardHandler) authorize(w http.ResponseWriter, credential string) bool {
	if err := auth.ValidateCredential(credential, h.cfg.BoardPassword); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credential")
		return false
	}
	return true
}

// writeBoardError maps board errors to HTTP status codes
func writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrInvalidColumn):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid column")
	case errors.Is(err, board.ErrColumnFull):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Column is full")
	case errors.Is(err, board.ErrCardNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Card not found")
	default:
		slog.Error("board operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Board error")
	}
}
