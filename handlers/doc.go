// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the slotvote server.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - WebhookHandler: Slack interaction ingestion (the vote-write path)
  - MeetingHandler: poll creation and candidate posting
  - ResultsHandler: tally, voter detail, final selection

The Slack collaborators are passed as the small local interfaces Directory
(display-name lookup) and Notifier (outbound messages); both may be nil
when no bot token is configured, which disables those side effects without
disabling vote ingestion.

# Vote Ingestion

POST /slack/interactions progresses through fixed gates:

	received → verified → extracted → recorded → acknowledged

with a short circuit to rejection at each gate:

	401  signature/timestamp verification failed
	400  malformed body, extraction failure, or unknown option
	500  persistence unavailable (Slack's own redelivery retries it)

There are no internal retries: recording is an idempotent upsert, so a
redelivered vote converges to the same state.

# Confirmation Flow

	POST /meetings                 create meeting + options, post candidates
	GET  /meetings/{id}/tally      ranked accept/decline counts
	GET  /meetings/{id}/details    voter names per option and response
	POST /meetings/{id}/finalize   confirm an option, announce the decision
	GET  /meetings/{id}/finalize   read the confirmed option
*/
package handlers
