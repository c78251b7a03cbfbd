package payload

import (
	"errors"
	"testing"

	"github.com/danielhkuo/slotvote/models"
)

func TestExtract_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantID   int64
		wantResp string
		wantName string
	}{
		{
			name:     "strategy 1: embedded JSON value",
			raw:      `{"type":"block_actions","user":{"id":"U1","username":"alice"},"actions":[{"action_id":"vote","value":"{\"option_id\":12,\"status\":\"accept\"}"}]}`,
			wantID:   12,
			wantResp: models.ResponseAccept,
			wantName: "alice",
		},
		{
			name:     "strategy 1: string option_id and legacy ok token",
			raw:      `{"type":"block_actions","user":{"id":"U1"},"actions":[{"action_id":"vote","value":"{\"option_id\":\"7\",\"status\":\"ok\"}"}]}`,
			wantID:   7,
			wantResp: models.ResponseAccept,
			wantName: "U1",
		},
		{
			name:     "strategy 2: colon pair",
			raw:      `{"type":"block_actions","user":{"id":"U2","username":"bob"},"actions":[{"action_id":"vote","value":"5:decline"}]}`,
			wantID:   5,
			wantResp: models.ResponseDecline,
			wantName: "bob",
		},
		{
			name:     "strategy 2: legacy ng token",
			raw:      `{"type":"interactive_message","user":{"id":"U2","name":"bob"},"actions":[{"action_id":"vote","value":"5:ng"}]}`,
			wantID:   5,
			wantResp: models.ResponseDecline,
			wantName: "bob",
		},
		{
			name:     "strategy 3: action id suffix with ok token",
			raw:      `{"type":"block_actions","user":{"id":"U3"},"actions":[{"action_id":"vote_ok_42"}]}`,
			wantID:   42,
			wantResp: models.ResponseAccept,
			wantName: "U3",
		},
		{
			name:     "strategy 3: action id suffix with decline token",
			raw:      `{"type":"block_actions","user":{"id":"U3"},"actions":[{"action_id":"vote:decline:9"}]}`,
			wantID:   9,
			wantResp: models.ResponseDecline,
			wantName: "U3",
		},
		{
			name:     "strategy 4: selected option",
			raw:      `{"type":"block_actions","user":{"id":"U4"},"actions":[{"action_id":"pick","selected_option":{"value":"{\"option_id\":3,\"status\":\"decline\"}"}}]}`,
			wantID:   3,
			wantResp: models.ResponseDecline,
			wantName: "U4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vote, err := Extract([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if vote.OptionID != tt.wantID {
				t.Errorf("option id: expected %d, got %d", tt.wantID, vote.OptionID)
			}
			if vote.Response != tt.wantResp {
				t.Errorf("response: expected %s, got %s", tt.wantResp, vote.Response)
			}
			if vote.FallbackName != tt.wantName {
				t.Errorf("fallback name: expected %s, got %s", tt.wantName, vote.FallbackName)
			}
		})
	}
}

// A payload satisfying both the embedded-JSON strategy and the action-id
// suffix convention with differing option ids must resolve via the former.
func TestExtract_StrategyPriority(t *testing.T) {
	raw := `{"type":"block_actions","user":{"id":"U1"},"actions":[{"action_id":"vote_ok_99","value":"{\"option_id\":7,\"status\":\"accept\"}"}]}`

	vote, err := Extract([]byte(raw))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if vote.OptionID != 7 {
		t.Errorf("expected embedded JSON to win: option id 7, got %d", vote.OptionID)
	}
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid JSON", `not json`},
		{"unrecognized envelope type", `{"type":"view_submission","user":{"id":"U1"},"actions":[{"value":"1:accept"}]}`},
		{"missing user id", `{"type":"block_actions","user":{},"actions":[{"value":"1:accept"}]}`},
		{"no actions", `{"type":"block_actions","user":{"id":"U1"},"actions":[]}`},
		{"unknown status token", `{"type":"block_actions","user":{"id":"U1"},"actions":[{"value":"1:maybe"}]}`},
		{"no strategy matches", `{"type":"block_actions","user":{"id":"U1"},"actions":[{"action_id":"open_dialog","value":"irrelevant"}]}`},
		{"JSON value without status", `{"type":"block_actions","user":{"id":"U1"},"actions":[{"value":"{\"option_id\":5}"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.raw))
			if !errors.Is(err, ErrExtraction) {
				t.Errorf("expected ErrExtraction, got %v", err)
			}
		})
	}
}
