// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the slotvote server.

Slotvote coordinates a scheduling poll through Slack: an organizer proposes
candidate meeting times, participants answer with accept/decline buttons,
votes are tallied, and the confirmed time is announced back to the channel.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:schedule.db SLACK_SIGNING_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8090 -d "file:schedule.db" -signing-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - SLACK_SIGNING_SECRET (-signing-secret): webhook signature key

Optional settings:

  - PORT (-p): Server port (default: 8090)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - SLACK_BOT_TOKEN (-bot-token): enables message posting and name lookup
  - SLACK_CHANNEL (-channel): default channel for candidate messages

A .env file in the working directory is honored.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: webhook ingestion, meeting creation, tally/finalize
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, JSON helpers
  - models: request/response and domain types
  - auth: Slack request signature verification
  - payload: interaction envelope → normalized vote extraction
  - store: vote store and tally engine
  - slackclient: outbound messages and display-name lookup
  - db: connection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
