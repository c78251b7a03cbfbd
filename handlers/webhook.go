// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/danielhkuo/slotvote/auth"
	"github.com/danielhkuo/slotvote/cliparse"
	"github.com/danielhkuo/slotvote/middleware"
	"github.com/danielhkuo/slotvote/models"
	"github.com/danielhkuo/slotvote/payload"
	"github.com/danielhkuo/slotvote/store"
)

// maxWebhookBody bounds inbound webhook bodies; interaction payloads are
// small and anything larger is not worth signing-checking.
const maxWebhookBody = 1 << 20

// Directory resolves a responder id to a display name. Implementations
// must bound their own latency; failure is non-fatal to the vote.
type Directory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Notifier posts outbound meeting messages to the chat platform.
type Notifier interface {
	PostCandidates(ctx context.Context, channelID, title string, options []models.Option) (string, error)
	PostDecision(ctx context.Context, channelID, title, chosenText string, rows []models.TallyRow) error
}

type WebhookHandler struct {
	store *store.Store
	cfg   cliparse.Config
	dir   Directory // nil when Slack lookup is not configured
}

func NewWebhookHandler(st *store.Store, cfg cliparse.Config, dir Directory) *WebhookHandler {
	return &WebhookHandler{store: st, cfg: cfg, dir: dir}
}

// HandleInteraction handles POST /slack/interactions, the single
// network-facing surface for vote ingestion. Per delivery:
// verify signature → extract vote → resolve name (bounded, best effort) →
// upsert → acknowledge. Slack redelivers on slow or failed responses, and
// the upsert is idempotent, so no internal retries happen here.
func (h *WebhookHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	// The signature covers the exact raw bytes, so the body must be read
	// before any form parsing.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unreadable request body")
		return
	}

	if err := auth.VerifySlackRequest(r.Header, body, h.cfg.SlackSigningSecret, time.Now()); err != nil {
		slog.Warn("unauthorized webhook delivery", "error", err, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid request signature")
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Malformed form body")
		return
	}
	payloadJSON := form.Get("payload")
	if payloadJSON == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing payload")
		return
	}

	vote, err := payload.Extract([]byte(payloadJSON))
	if err != nil {
		slog.Warn("vote extraction failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	userName := h.resolveName(r.Context(), vote)

	err = h.store.RecordVote(r.Context(), vote.OptionID, vote.ResponderID, userName, vote.Response)
	if errors.Is(err, store.ErrInvalidReference) {
		slog.Warn("vote for unknown option", "option_id", vote.OptionID, "user_id", vote.ResponderID)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown option")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "option_id", vote.OptionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote recorded",
		"option_id", vote.OptionID,
		"user_id", vote.ResponderID,
		"status", vote.Response,
	)

	// Slack wants a fast bare acknowledgement
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// resolveName returns the best display name for the vote: the directory's
// answer when available, otherwise the identity carried in the envelope.
// Lookup failure degrades, it never rejects the vote.
func (h *WebhookHandler) resolveName(ctx context.Context, vote payload.Vote) string {
	if h.dir == nil {
		return vote.FallbackName
	}
	name, err := h.dir.DisplayName(ctx, vote.ResponderID)
	if err != nil || name == "" {
		if err != nil {
			slog.Warn("display name lookup failed", "error", err, "user_id", vote.ResponderID)
		}
		return vote.FallbackName
	}
	return name
}

// Healthz handles GET /healthz
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
