// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Supported Databases

Two drivers are registered:

  - sqlite (modernc.org/sqlite, pure Go) - the default
  - postgres (github.com/lib/pq)

Open selects the driver from the configured database type. All SQL in the
rest of the codebase sticks to the portable subset both engines accept:
$N placeholders, ON CONFLICT ... DO UPDATE, and INSERT ... RETURNING.

# Schema

Four tables, created idempotently by CreateSchema:

	meetings        one row per scheduling poll
	options         candidate date/times, many per meeting
	votes           UNIQUE (option_id, user_id) - the upsert target
	final_selection UNIQUE (meeting_id) - at most one confirmed option

The UNIQUE constraints are load-bearing: vote recording and final-selection
confirmation are both single-statement upserts against them.
*/
package db
