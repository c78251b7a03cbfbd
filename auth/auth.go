// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// Slack request signing headers
const (
	TimestampHeader = "X-Slack-Request-Timestamp"
	SignatureHeader = "X-Slack-Signature"
)

// SignatureVersion is the Slack signing scheme version prefix.
const SignatureVersion = "v0"

// maxClockSkew is the replay window: requests whose timestamp is further
// than this from the server clock are rejected in either direction.
const maxClockSkew = 300 // seconds

var (
	ErrMissingSignature = errors.New("missing signature headers")
	ErrStaleTimestamp   = errors.New("stale or invalid request timestamp")
	ErrBadSignature     = errors.New("signature mismatch")
)

// VerifySlackRequest checks that a webhook request carries a valid Slack
// signature over the exact raw body. The comparison is constant-time.
// Any returned error means the request must be rejected as unauthorized.
func VerifySlackRequest(header http.Header, body []byte, secret string, now time.Time) error {
	timestamp := header.Get(TimestampHeader)
	signature := header.Get(SignatureHeader)
	if timestamp == "" || signature == "" {
		return ErrMissingSignature
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	skew := now.Unix() - unix
	if skew < 0 {
		skew = -skew
	}
	if skew > maxClockSkew {
		return ErrStaleTimestamp
	}

	expected := ComputeSignature(secret, timestamp, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

// ComputeSignature returns the Slack-style signature for a request:
// "v0=" + hex(HMAC-SHA256(secret, "v0:<timestamp>:<body>")).
// Exported so tests and outbound tooling can sign requests the same way.
func ComputeSignature(secret, timestamp string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(SignatureVersion + ":" + timestamp + ":"))
	h.Write(body)
	return SignatureVersion + "=" + hex.EncodeToString(h.Sum(nil))
}
