// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/slotvote/cliparse"
	"github.com/danielhkuo/slotvote/handlers"
	"github.com/danielhkuo/slotvote/middleware"
	"github.com/danielhkuo/slotvote/slackclient"
	"github.com/danielhkuo/slotvote/store"
)

func NewRouter(dbConn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	st := store.New(dbConn)

	// A missing bot token leaves both collaborators nil: votes are still
	// ingested, but nothing is posted and names fall back to the envelope.
	var notifier handlers.Notifier
	var directory handlers.Directory
	if c := slackclient.New(cfg.SlackBotToken, cfg.SlackChannel); c != nil {
		notifier = c
		directory = c
	}

	webhookHandler := handlers.NewWebhookHandler(st, cfg, directory)
	meetingHandler := handlers.NewMeetingHandler(st, cfg, notifier)
	resultsHandler := handlers.NewResultsHandler(st, cfg, notifier)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /healthz", handlers.Healthz)

	// Vote ingestion (Slack-facing)
	mux.HandleFunc("POST /slack/interactions", middleware.WithLogging(webhookHandler.HandleInteraction))

	// Poll creation (collaborator UI)
	mux.HandleFunc("POST /meetings", middleware.WithLogging(meetingHandler.CreateMeeting))

	// Confirmation reads and final selection
	mux.HandleFunc("GET /meetings/{id}/tally", middleware.WithLogging(resultsHandler.GetTally))
	mux.HandleFunc("GET /meetings/{id}/details", middleware.WithLogging(resultsHandler.GetDetails))
	mux.HandleFunc("POST /meetings/{id}/finalize", middleware.WithLogging(resultsHandler.Finalize))
	mux.HandleFunc("GET /meetings/{id}/finalize", middleware.WithLogging(resultsHandler.GetFinal))

	// Root endpoint, exact path only so unknown routes 404 and wrong
	// methods on registered routes 405
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("slotvote API v1"))
	})

	return mux
}
