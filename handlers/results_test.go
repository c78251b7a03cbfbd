// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/slotvote/models"
	"github.com/danielhkuo/slotvote/store"
	"github.com/danielhkuo/slotvote/testutil"
)

func tallyRequest(meetingID string) *http.Request {
	req := httptest.NewRequest("GET", "/meetings/"+meetingID+"/tally", nil)
	req.SetPathValue("id", meetingID)
	return req
}

func TestGetTally(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	meetingID := testutil.CreateTestMeeting(t, db, "Sync", "C1")
	opt1 := testutil.AddTestOption(t, db, meetingID, "Mon 10:00")
	opt2 := testutil.AddTestOption(t, db, meetingID, "Tue 14:00")

	testutil.RecordTestVote(t, db, opt1, "U1", "alice", models.ResponseAccept)
	testutil.RecordTestVote(t, db, opt1, "U2", "bob", models.ResponseAccept)
	testutil.RecordTestVote(t, db, opt2, "U1", "alice", models.ResponseDecline)

	handler := NewResultsHandler(store.New(db), testutil.GetTestConfig(), nil)

	req := httptest.NewRequest("GET", "/meetings/1/tally", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.GetTally(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.TallyResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Rows))
	}
	// Best-attended first
	if resp.Rows[0].OptionID != opt1 || resp.Rows[0].AcceptCount != 2 || resp.Rows[0].DeclineCount != 0 {
		t.Errorf("unexpected first row: %+v", resp.Rows[0])
	}
	if resp.Rows[1].OptionID != opt2 || resp.Rows[1].AcceptCount != 0 || resp.Rows[1].DeclineCount != 1 {
		t.Errorf("unexpected second row: %+v", resp.Rows[1])
	}
}

func TestGetTally_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewResultsHandler(store.New(db), testutil.GetTestConfig(), nil)

	t.Run("unknown meeting", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetTally(w, tallyRequest("9999"))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetTally(w, tallyRequest("abc"))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetDetails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	meetingID := testutil.CreateTestMeeting(t, db, "Sync", "C1")
	opt1 := testutil.AddTestOption(t, db, meetingID, "Mon 10:00")
	testutil.AddTestOption(t, db, meetingID, "Tue 14:00")

	testutil.RecordTestVote(t, db, opt1, "U1", "alice", models.ResponseAccept)

	handler := NewResultsHandler(store.New(db), testutil.GetTestConfig(), nil)

	req := httptest.NewRequest("GET", "/meetings/1/details", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.GetDetails(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DetailResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Options) != 2 {
		t.Fatalf("expected 2 options in details, got %d", len(resp.Options))
	}
	mon := resp.Options["Mon 10:00"]
	if len(mon.Accepted) != 1 || mon.Accepted[0] != "alice" {
		t.Errorf("unexpected accepted list: %v", mon.Accepted)
	}
	tue := resp.Options["Tue 14:00"]
	if len(tue.Accepted) != 0 || len(tue.Declined) != 0 {
		t.Errorf("expected empty lists for unvoted option, got %+v", tue)
	}
}

func TestFinalize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	meetingID := testutil.CreateTestMeeting(t, db, "Sync", "C42")
	opt1 := testutil.AddTestOption(t, db, meetingID, "Mon 10:00")
	opt2 := testutil.AddTestOption(t, db, meetingID, "Tue 14:00")
	testutil.RecordTestVote(t, db, opt1, "U1", "alice", models.ResponseAccept)

	notifier := &stubNotifier{}
	handler := NewResultsHandler(store.New(db), testutil.GetTestConfig(), notifier)

	req := testutil.MakeRequest("POST", "/meetings/1/finalize", models.FinalizeRequest{OptionID: opt1}, nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.Finalize(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.FinalizeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.OptionID != opt1 || resp.Text != "Mon 10:00" {
		t.Errorf("unexpected finalize response: %+v", resp)
	}

	// Decision announced to the meeting's channel with the ranked tally
	if notifier.decisionPosts != 1 {
		t.Errorf("expected 1 decision post, got %d", notifier.decisionPosts)
	}
	if notifier.lastChannel != "C42" || notifier.lastChosen != "Mon 10:00" {
		t.Errorf("unexpected announcement: channel=%s chosen=%s", notifier.lastChannel, notifier.lastChosen)
	}
	if len(notifier.lastRows) != 2 {
		t.Errorf("expected tally rows in announcement, got %d", len(notifier.lastRows))
	}

	// Re-confirmation overwrites the selection
	req = testutil.MakeRequest("POST", "/meetings/1/finalize", models.FinalizeRequest{OptionID: opt2}, nil)
	req.SetPathValue("id", "1")
	w = httptest.NewRecorder()
	handler.Finalize(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM final_selection WHERE meeting_id = $1`, meetingID).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected single selection row after overwrite, got %d", count)
	}
}

func TestFinalize_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	meetingA := testutil.CreateTestMeeting(t, db, "A", "C1")
	meetingB := testutil.CreateTestMeeting(t, db, "B", "C1")
	optB := testutil.AddTestOption(t, db, meetingB, "Mon 10:00")

	handler := NewResultsHandler(store.New(db), testutil.GetTestConfig(), nil)
	meetingAPath := strconv.FormatInt(meetingA, 10)

	t.Run("cross-meeting option", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/meetings/"+meetingAPath+"/finalize", models.FinalizeRequest{OptionID: optB}, nil)
		req.SetPathValue("id", meetingAPath)
		w := httptest.NewRecorder()
		handler.Finalize(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/meetings/9999/finalize", models.FinalizeRequest{OptionID: optB}, nil)
		req.SetPathValue("id", "9999")
		w := httptest.NewRecorder()
		handler.Finalize(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing option_id", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/meetings/"+meetingAPath+"/finalize", models.FinalizeRequest{}, nil)
		req.SetPathValue("id", meetingAPath)
		w := httptest.NewRecorder()
		handler.Finalize(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetFinal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	meetingID := testutil.CreateTestMeeting(t, db, "Sync", "C1")
	opt1 := testutil.AddTestOption(t, db, meetingID, "Mon 10:00")

	handler := NewResultsHandler(store.New(db), testutil.GetTestConfig(), nil)

	// Undecided meeting has no selection
	req := httptest.NewRequest("GET", "/meetings/1/finalize", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.GetFinal(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// Confirm, then read it back
	freq := testutil.MakeRequest("POST", "/meetings/1/finalize", models.FinalizeRequest{OptionID: opt1}, nil)
	freq.SetPathValue("id", "1")
	fw := httptest.NewRecorder()
	handler.Finalize(fw, freq)
	testutil.AssertStatus(t, fw, http.StatusOK)

	req = httptest.NewRequest("GET", "/meetings/1/finalize", nil)
	req.SetPathValue("id", "1")
	w = httptest.NewRecorder()
	handler.GetFinal(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var sel models.FinalSelection
	testutil.AssertJSON(t, w, &sel)
	if sel.OptionID != opt1 || sel.OptionText != "Mon 10:00" {
		t.Errorf("unexpected selection: %+v", sel)
	}
}
