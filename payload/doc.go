// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package payload extracts a normalized vote from a Slack interaction envelope.

# Envelope Variance

The envelope shape is not controlled by this system: Slack owns the outer
structure, and the button values inside were produced by whichever message
builder posted the poll. Extraction therefore probes a fixed, ordered list
of strategies and uses the first that succeeds:

 1. Button value carrying JSON: {"option_id": 12, "status": "accept"}.
    This is the canonical wire encoding; package slackclient emits it.
 2. Colon-delimited value: "12:accept"
 3. Action id convention: a numeric suffix names the option and an
    accept/decline token names the response, e.g. "vote_ok_12"
 4. Select-menu payloads: selected_option.value, parsed as in 1

The order is a contract - a payload matching both 1 and 3 with different
option ids resolves via 1.

# Status Normalization

Only two response states exist: "accept" and "decline". The legacy tokens
"ok"/"ng" and "yes"/"no" normalize to them; any other token fails
extraction.

# Failure

Every failure path returns an error wrapping ErrExtraction with a
diagnostic detail. Unrecognized envelope types fail cleanly rather than
being probed. The webhook endpoint maps ErrExtraction to HTTP 400.
*/
package payload
