// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package slackclient is the outbound side of the Slack integration: posting
poll and decision messages, and resolving responder display names.

# Wire Contract

Vote buttons carry the canonical encoding parsed by package payload's first
strategy:

	{"option_id": 12, "status": "accept"}

CandidateValue produces it; changing it is a breaking change to the
contract between this package and the extractor.

# Degraded Operation

New returns nil when no bot token is configured. Handlers treat a nil
Client as "Slack disabled": votes are still ingested and tallied, but no
messages are posted and display names fall back to what the event envelope
carried. DisplayName is bounded by a 2 second timeout for the same reason -
a slow directory must never push the webhook past Slack's 3 second
acknowledgement window.
*/
package slackclient
