// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/slotvote/cliparse"
	"github.com/danielhkuo/slotvote/middleware"
	"github.com/danielhkuo/slotvote/models"
	"github.com/danielhkuo/slotvote/store"
)

type MeetingHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	notifier Notifier // nil when Slack posting is not configured
}

func NewMeetingHandler(st *store.Store, cfg cliparse.Config, notifier Notifier) *MeetingHandler {
	return &MeetingHandler{store: st, cfg: cfg, notifier: notifier}
}

// CreateMeeting handles POST /meetings: creates the meeting, its candidate
// options in display order, and posts the voting message to the channel.
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMeetingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least 2 options are required")
		return
	}

	channelID := req.ChannelID
	if channelID == "" {
		channelID = h.cfg.SlackChannel
	}
	if channelID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "channel_id is required (no default channel configured)")
		return
	}

	meetingID, err := h.store.CreateMeeting(r.Context(), req.Title, channelID)
	if err != nil {
		slog.Error("failed to create meeting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	options := make([]models.Option, 0, len(req.Options))
	for _, text := range req.Options {
		optionID, err := h.store.AddOption(r.Context(), meetingID, text)
		if err != nil {
			slog.Error("failed to add option", "error", err, "meeting_id", meetingID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		options = append(options, models.Option{ID: optionID, MeetingID: meetingID, Text: text})
	}

	slog.Info("meeting created", "meeting_id", meetingID, "options", len(options), "channel", channelID)

	// Posting the candidates is best effort: the poll exists and can be
	// voted on even if the announcement fails or Slack is not configured.
	if h.notifier != nil {
		if ts, err := h.notifier.PostCandidates(r.Context(), channelID, req.Title, options); err != nil {
			slog.Error("failed to post candidates", "error", err, "meeting_id", meetingID)
		} else {
			slog.Info("candidates posted", "meeting_id", meetingID, "message_ts", ts)
		}
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateMeetingResponse{
		MeetingID: meetingID,
		Options:   options,
	})
}
