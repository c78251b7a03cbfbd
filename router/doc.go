// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the slotvote server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Liveness:

	GET /healthz

Vote ingestion (Slack interactive components; signed requests only):

	POST /slack/interactions

Poll creation and confirmation (collaborator UI):

	POST /meetings                 - Create meeting with candidate options
	GET  /meetings/{id}/tally      - Ranked accept/decline counts
	GET  /meetings/{id}/details    - Voter names per option
	POST /meetings/{id}/finalize   - Confirm the final option
	GET  /meetings/{id}/finalize   - Read the confirmed option

# Handler Initialization

The router creates handler instances with dependency injection:

	webhookHandler := handlers.NewWebhookHandler(st, cfg, directory)
	meetingHandler := handlers.NewMeetingHandler(st, cfg, notifier)
	resultsHandler := handlers.NewResultsHandler(st, cfg, notifier)

The Slack client backs both the Notifier and Directory interfaces; when no
bot token is configured both stay nil and the server runs ingestion-only.
*/
package router
