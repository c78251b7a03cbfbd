// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/slotvote/testutil"
)

func TestRouterRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"healthz", "GET", "/healthz", http.StatusOK},
		{"root", "GET", "/", http.StatusOK},
		{"unknown path", "GET", "/nope", http.StatusNotFound},
		{"healthz wrong method", "POST", "/healthz", http.StatusMethodNotAllowed},
		{"interactions wrong method", "GET", "/slack/interactions", http.StatusMethodNotAllowed},
		{"unsigned interaction rejected", "POST", "/slack/interactions", http.StatusUnauthorized},
		{"tally of unknown meeting", "GET", "/meetings/42/tally", http.StatusNotFound},
		{"details of unknown meeting", "GET", "/meetings/42/details", http.StatusNotFound},
		{"final of unknown meeting", "GET", "/meetings/42/finalize", http.StatusNotFound},
		{"create meeting without body", "POST", "/meetings", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("%s %s: expected %d, got %d (body: %s)",
					tt.method, tt.path, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHealthzBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Body.String() != "ok" {
		t.Errorf("expected fixed ok body, got %q", w.Body.String())
	}
}

// A signed delivery routed through the full mux lands a vote.
func TestRouterSignedInteraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	meetingID := testutil.CreateTestMeeting(t, db, "Sync", "C1")
	optionID := testutil.AddTestOption(t, db, meetingID, "Mon 10:00")

	mux := NewRouter(db, testutil.GetTestConfig())

	payload := fmt.Sprintf(
		`{"type":"block_actions","user":{"id":"U1","username":"alice"},"actions":[{"action_id":"vote_accept_%d"}]}`,
		optionID)
	req := testutil.SignedWebhookRequest(payload)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM votes WHERE option_id = $1`, optionID).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one vote via router, got %d", count)
	}
}
