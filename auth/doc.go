// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies that inbound webhook requests originate from Slack.

# Request Signing

Slack signs every webhook delivery with HMAC-SHA256 over the string

	v0:<timestamp>:<raw request body>

keyed by the app's signing secret, and sends the result in the
X-Slack-Signature header alongside X-Slack-Request-Timestamp.

VerifySlackRequest recomputes the signature over the exact raw body and
compares it in constant time:

	if err := auth.VerifySlackRequest(r.Header, rawBody, secret, time.Now()); err != nil {
		// reject with 401
	}

# Replay Protection

Requests whose timestamp is more than 300 seconds from the server clock in
either direction are rejected, regardless of signature validity. This bounds
the window in which a captured request can be replayed.

# Error Values

  - ErrMissingSignature: one or both headers absent
  - ErrStaleTimestamp: non-numeric or outside the replay window
  - ErrBadSignature: computed signature does not match

All three map to HTTP 401 at the endpoint. There is no bypass path: the
server refuses to start without a signing secret (see package cliparse).
*/
package auth
