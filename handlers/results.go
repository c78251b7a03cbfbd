// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/slotvote/cliparse"
	"github.com/danielhkuo/slotvote/middleware"
	"github.com/danielhkuo/slotvote/models"
	"github.com/danielhkuo/slotvote/store"
)

type ResultsHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	notifier Notifier // nil when Slack posting is not configured
}

func NewResultsHandler(st *store.Store, cfg cliparse.Config, notifier Notifier) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg, notifier: notifier}
}

func meetingIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetTally handles GET /meetings/{id}/tally
// Rows come back ranked: accept count descending, decline count ascending.
// The query is all-or-nothing - a store failure returns an error, never a
// partial tally.
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := meetingIDFromPath(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid meeting id")
		return
	}

	rows, err := h.store.Tally(r.Context(), meetingID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not found")
		return
	}
	if err != nil {
		slog.Error("failed to tally votes", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		MeetingID: meetingID,
		Rows:      rows,
	})
}

// GetDetails handles GET /meetings/{id}/details
// Maps each option's text to the names of its accepters and decliners.
func (h *ResultsHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := meetingIDFromPath(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid meeting id")
		return
	}

	details, err := h.store.VoteDetail(r.Context(), meetingID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not found")
		return
	}
	if err != nil {
		slog.Error("failed to load vote detail", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DetailResponse{
		MeetingID: meetingID,
		Options:   details,
	})
}

// Finalize handles POST /meetings/{id}/finalize
// Confirms one option as the meeting's final time (idempotent set: a
// re-confirmation overwrites) and announces the decision to the channel.
func (h *ResultsHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := meetingIDFromPath(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid meeting id")
		return
	}

	var req models.FinalizeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_id is required")
		return
	}

	meeting, err := h.store.GetMeeting(r.Context(), meetingID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meeting not found")
		return
	}
	if err != nil {
		slog.Error("failed to query meeting", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.store.SetFinalSelection(r.Context(), meetingID, req.OptionID)
	if errors.Is(err, store.ErrInvalidReference) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Option does not belong to this meeting")
		return
	}
	if err != nil {
		slog.Error("failed to set final selection", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sel, err := h.store.GetFinalSelection(r.Context(), meetingID)
	if err != nil {
		slog.Error("failed to read back final selection", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("final selection set", "meeting_id", meetingID, "option_id", sel.OptionID)

	// Announcement is best effort, the decision is already durable.
	if h.notifier != nil {
		rows, err := h.store.Tally(r.Context(), meetingID)
		if err != nil {
			slog.Error("failed to tally for announcement", "error", err, "meeting_id", meetingID)
		} else if err := h.notifier.PostDecision(r.Context(), meeting.ChannelID, meeting.Title, sel.OptionText, rows); err != nil {
			slog.Error("failed to post decision", "error", err, "meeting_id", meetingID)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalizeResponse{
		MeetingID: meetingID,
		OptionID:  sel.OptionID,
		Text:      sel.OptionText,
		DecidedAt: sel.DecidedAt,
	})
}

// GetFinal handles GET /meetings/{id}/finalize
// Returns the confirmed option, or 404 while the meeting is undecided.
func (h *ResultsHandler) GetFinal(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := meetingIDFromPath(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid meeting id")
		return
	}

	sel, err := h.store.GetFinalSelection(r.Context(), meetingID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No final selection")
		return
	}
	if err != nil {
		slog.Error("failed to query final selection", "error", err, "meeting_id", meetingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sel)
}
