// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote response states
const (
	ResponseAccept  = "accept"
	ResponseDecline = "decline"
)

// Request types

type CreateMeetingRequest struct {
	Title     string   `json:"title"`
	ChannelID string   `json:"channel_id"`
	Options   []string `json:"options"`
}

type FinalizeRequest struct {
	OptionID int64 `json:"option_id"`
}

// Response types

type CreateMeetingResponse struct {
	MeetingID int64    `json:"meeting_id"`
	Options   []Option `json:"options"`
}

type TallyResponse struct {
	MeetingID int64      `json:"meeting_id"`
	Rows      []TallyRow `json:"rows"`
}

type DetailResponse struct {
	MeetingID int64                   `json:"meeting_id"`
	Options   map[string]OptionVoters `json:"options"`
}

type FinalizeResponse struct {
	MeetingID int64     `json:"meeting_id"`
	OptionID  int64     `json:"option_id"`
	Text      string    `json:"text"`
	DecidedAt time.Time `json:"decided_at"`
}

// Domain types

type Meeting struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ChannelID string    `json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID        int64     `json:"id"`
	MeetingID int64     `json:"meeting_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TallyRow is one option's aggregate counts. Rows are ordered by accept
// count descending, then decline count ascending.
type TallyRow struct {
	OptionID     int64  `json:"option_id"`
	Text         string `json:"text"`
	AcceptCount  int    `json:"accept_count"`
	DeclineCount int    `json:"decline_count"`
}

// FinalSelection is the organizer-confirmed option for a meeting.
type FinalSelection struct {
	MeetingID  int64     `json:"meeting_id"`
	OptionID   int64     `json:"option_id"`
	OptionText string    `json:"option_text"`
	DecidedAt  time.Time `json:"decided_at"`
}

// OptionVoters lists resolved display names per response state for one option.
type OptionVoters struct {
	Accepted []string `json:"accepted"`
	Declined []string `json:"declined"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
