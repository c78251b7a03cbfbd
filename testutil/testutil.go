// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/slotvote/auth"
	"github.com/danielhkuo/slotvote/cliparse"
	"github.com/danielhkuo/slotvote/db"
)

// TestSigningSecret is the Slack signing secret used by all signed test
// requests and by GetTestConfig.
const TestSigningSecret = "test-signing-secret"

// SetupTestDB creates a fresh sqlite database in a per-test temp directory
// with the full schema. Each test gets its own file, so tests are isolated
// and the suite needs no external services.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "slotvote_test.db")
	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               8090,
		DatabaseURL:        "file:unused.db",
		DatabaseType:       "sqlite",
		SlackSigningSecret: TestSigningSecret,
	}
}

// CreateTestMeeting inserts a meeting and returns its id
func CreateTestMeeting(t *testing.T, db *sql.DB, title, channelID string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`
		INSERT INTO meetings (title, channel_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, title, channelID, time.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test meeting: %v", err)
	}

	return id
}

// AddTestOption inserts a candidate option and returns its id
func AddTestOption(t *testing.T, db *sql.DB, meetingID int64, text string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`
		INSERT INTO options (meeting_id, text, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, meetingID, text, time.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return id
}

// RecordTestVote inserts or updates a vote row directly
func RecordTestVote(t *testing.T, db *sql.DB, optionID int64, userID, userName, status string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO votes (option_id, user_id, user_name, status, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (option_id, user_id) DO UPDATE SET
			user_name = excluded.user_name,
			status = excluded.status,
			voted_at = excluded.voted_at
	`, optionID, userID, userName, status, time.Now())
	if err != nil {
		t.Fatalf("Failed to record test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request with a JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// SignedWebhookRequest builds a form-encoded interaction request carrying
// the given payload JSON, signed the way Slack signs deliveries.
func SignedWebhookRequest(payloadJSON string) *http.Request {
	return SignedWebhookRequestAt(payloadJSON, time.Now())
}

// SignedWebhookRequestAt is SignedWebhookRequest with an explicit
// timestamp, for replay-window tests.
func SignedWebhookRequestAt(payloadJSON string, ts time.Time) *http.Request {
	form := url.Values{}
	form.Set("payload", payloadJSON)
	body := form.Encode()

	req := httptest.NewRequest("POST", "/slack/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := strconv.FormatInt(ts.Unix(), 10)
	req.Header.Set(auth.TimestampHeader, timestamp)
	req.Header.Set(auth.SignatureHeader, auth.ComputeSignature(TestSigningSecret, timestamp, []byte(body)))

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
