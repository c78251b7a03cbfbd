// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the vote store and tally engine.

# Write Operations

	CreateMeeting(ctx, title, channelID) → meetingID
	AddOption(ctx, meetingID, text)      → optionID
	RecordVote(ctx, optionID, userID, userName, status)
	SetFinalSelection(ctx, meetingID, optionID)

RecordVote is an idempotent upsert keyed by (option, responder): a
responder has at most one vote per option and the last write wins. The
upsert is a single INSERT ... ON CONFLICT statement, so concurrent webhook
deliveries serialize in the database - re-delivery of the same vote
produces the same end state.

SetFinalSelection upserts the meeting's unique selection slot the same way.

# Read Operations

	GetMeeting, ListOptions
	Tally(ctx, meetingID)             → ranked per-option counts
	VoteDetail(ctx, meetingID)        → option text → voter names by response
	GetFinalSelection(ctx, meetingID) → confirmed option or ErrNotFound

Tally ordering is a contract: accept count descending, then decline count
ascending, so the best-attended options rank first with ties broken toward
fewer decliners. Options with no votes are included with zero counts, and
the tally is a single query - it never partially renders a meeting.

# Errors

  - ErrNotFound: meeting or final selection does not exist
  - ErrInvalidReference: vote or selection pointing at a nonexistent option,
    or at an option of a different meeting

Anything else is a persistence failure and surfaces to callers wrapped, to
be treated as transient (HTTP 500, external redelivery retries).
*/
package store
