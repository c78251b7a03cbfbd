// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielhkuo/slotvote/models"
)

// ErrExtraction means no strategy could produce a vote from the envelope.
// The webhook endpoint maps it to a client error; it is never retried.
var ErrExtraction = errors.New("could not extract vote from payload")

// Recognized interaction envelope types. Anything else fails extraction
// cleanly instead of being probed for action fields.
const (
	TypeBlockActions       = "block_actions"
	TypeInteractiveMessage = "interactive_message"
)

// Vote is the normalized result of extraction: which option, who, and
// which way. FallbackName is the best identity string available from the
// envelope itself, used when directory lookup fails.
type Vote struct {
	OptionID     int64
	ResponderID  string
	FallbackName string
	Response     string
}

// envelope mirrors the subset of Slack's interaction callback that
// extraction reads. The shape is owned by Slack and by whichever message
// builder produced the poll post, so every field is optional here.
type envelope struct {
	Type string `json:"type"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
	Actions []action `json:"actions"`
}

type action struct {
	ActionID       string          `json:"action_id"`
	Value          string          `json:"value"`
	SelectedOption *selectedOption `json:"selected_option"`
}

type selectedOption struct {
	Value string `json:"value"`
}

var actionIDSuffix = regexp.MustCompile(`(\d+)\s*$`)

// Extract parses a raw interaction envelope into a Vote. Strategies are
// tried in fixed priority order and the first that succeeds wins:
//
//  1. action value carrying JSON {"option_id": N, "status": "..."} (the
//     canonical wire encoding emitted by package slackclient)
//  2. action value of the form "<option_id>:<status>"
//  3. numeric suffix of the action_id plus an accept/decline token in it
//  4. selected_option value, parsed as in strategy 1
func Extract(raw []byte) (Vote, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Vote{}, fmt.Errorf("%w: invalid JSON: %v", ErrExtraction, err)
	}

	if env.Type != TypeBlockActions && env.Type != TypeInteractiveMessage {
		return Vote{}, fmt.Errorf("%w: unrecognized envelope type %q", ErrExtraction, env.Type)
	}

	if env.User.ID == "" {
		return Vote{}, fmt.Errorf("%w: missing user id", ErrExtraction)
	}

	if len(env.Actions) == 0 {
		return Vote{}, fmt.Errorf("%w: no actions", ErrExtraction)
	}
	act := env.Actions[0]

	vote := Vote{
		ResponderID:  env.User.ID,
		FallbackName: fallbackName(env),
	}

	// Strategy 1: embedded JSON value
	if id, status, ok := parseJSONValue(act.Value); ok {
		vote.OptionID, vote.Response = id, status
		return vote, nil
	}

	// Strategy 2: "<option_id>:<status>"
	if id, status, ok := parseColonValue(act.Value); ok {
		vote.OptionID, vote.Response = id, status
		return vote, nil
	}

	// Strategy 3: option id from the action_id's numeric suffix
	if id, status, ok := parseActionID(act.ActionID); ok {
		vote.OptionID, vote.Response = id, status
		return vote, nil
	}

	// Strategy 4: select-menu payloads nest the value one level down
	if act.SelectedOption != nil {
		if id, status, ok := parseJSONValue(act.SelectedOption.Value); ok {
			vote.OptionID, vote.Response = id, status
			return vote, nil
		}
	}

	return Vote{}, fmt.Errorf("%w: no strategy matched action %q", ErrExtraction, act.ActionID)
}

func fallbackName(env envelope) string {
	if env.User.Username != "" {
		return env.User.Username
	}
	if env.User.Name != "" {
		return env.User.Name
	}
	return env.User.ID
}

func parseJSONValue(value string) (int64, string, bool) {
	if value == "" {
		return 0, "", false
	}
	var parsed struct {
		OptionID any    `json:"option_id"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return 0, "", false
	}
	id, ok := toOptionID(parsed.OptionID)
	if !ok {
		return 0, "", false
	}
	status := normalizeStatus(parsed.Status)
	if status == "" {
		return 0, "", false
	}
	return id, status, true
}

func parseColonValue(value string) (int64, string, bool) {
	idPart, statusPart, found := strings.Cut(value, ":")
	if !found {
		return 0, "", false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return 0, "", false
	}
	status := normalizeStatus(strings.TrimSpace(statusPart))
	if status == "" {
		return 0, "", false
	}
	return id, status, true
}

func parseActionID(actionID string) (int64, string, bool) {
	m := actionIDSuffix.FindStringSubmatch(actionID)
	if m == nil {
		return 0, "", false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, "", false
	}
	status := statusToken(actionID)
	if status == "" {
		return 0, "", false
	}
	return id, status, true
}

// statusToken scans an identifier like "vote_ok_12" or "vote:decline:3"
// for a response token. Accept tokens are checked first.
func statusToken(s string) string {
	lower := strings.ToLower(s)
	for _, tok := range []string{"accept", "ok", "yes"} {
		if strings.Contains(lower, tok) {
			return models.ResponseAccept
		}
	}
	for _, tok := range []string{"decline", "ng", "no"} {
		if strings.Contains(lower, tok) {
			return models.ResponseDecline
		}
	}
	return ""
}

// normalizeStatus maps a status token to a canonical response state.
// "ok"/"ng" are the legacy tokens of the original message format,
// "yes"/"no" the button-label era. Anything else is invalid.
func normalizeStatus(token string) string {
	switch strings.ToLower(token) {
	case models.ResponseAccept, "ok", "yes":
		return models.ResponseAccept
	case models.ResponseDecline, "ng", "no":
		return models.ResponseDecline
	default:
		return ""
	}
}

func toOptionID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
