// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared across
the slotvote server.

# Domain Types

  - Meeting: one scheduling poll with a title and target Slack channel
  - Option: one candidate date/time within a meeting
  - TallyRow: aggregate counts for one option, in ranked order
  - OptionVoters: resolved voter names per response state

# Response States

A vote is always one of two states:

	models.ResponseAccept  // "accept"
	models.ResponseDecline // "decline"

Legacy tokens appearing in inbound Slack payloads ("ok"/"ng", "yes"/"no")
are normalized to these by package payload before they reach the store.
*/
package models
