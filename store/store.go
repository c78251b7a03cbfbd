// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/slotvote/models"
)

var (
	// ErrNotFound means the referenced meeting, option, or final selection
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference means a write pointed at a nonexistent option or
	// at an option belonging to a different meeting.
	ErrInvalidReference = errors.New("invalid reference")
)

// Store is the persistent record of meetings, options, votes, and final
// selections. All mutation goes through it; callers only ever hold the
// integer ids it returns.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateMeeting inserts a new meeting and returns its id.
func (s *Store) CreateMeeting(ctx context.Context, title, channelID string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO meetings (title, channel_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, title, channelID, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert meeting: %w", err)
	}
	return id, nil
}

// AddOption appends a candidate to a meeting and returns its id. Options
// are displayed in insertion order, which id order preserves.
func (s *Store) AddOption(ctx context.Context, meetingID int64, text string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO options (meeting_id, text, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, meetingID, text, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert option: %w", err)
	}
	return id, nil
}

// GetMeeting returns one meeting by id.
func (s *Store) GetMeeting(ctx context.Context, meetingID int64) (models.Meeting, error) {
	var m models.Meeting
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, channel_id, created_at
		FROM meetings
		WHERE id = $1
	`, meetingID).Scan(&m.ID, &m.Title, &m.ChannelID, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Meeting{}, ErrNotFound
	}
	if err != nil {
		return models.Meeting{}, fmt.Errorf("failed to query meeting: %w", err)
	}
	return m, nil
}

// ListOptions returns a meeting's options in insertion order.
func (s *Store) ListOptions(ctx context.Context, meetingID int64) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, meeting_id, text, created_at
		FROM options
		WHERE meeting_id = $1
		ORDER BY id
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.MeetingID, &opt.Text, &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	return options, nil
}

// RecordVote upserts one responder's vote on one option: a later vote from
// the same responder on the same option overwrites the prior state and
// timestamp. The upsert is a single statement, so concurrent calls for the
// same (option, responder) pair serialize in the database without lost
// updates.
func (s *Store) RecordVote(ctx context.Context, optionID int64, userID, userName, status string) error {
	if status != models.ResponseAccept && status != models.ResponseDecline {
		return fmt.Errorf("invalid vote status %q", status)
	}

	// Options are never deleted, so existence checked here still holds at
	// insert time.
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM options WHERE id = $1)
	`, optionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check option: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: option %d", ErrInvalidReference, optionID)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO votes (option_id, user_id, user_name, status, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (option_id, user_id) DO UPDATE SET
			user_name = excluded.user_name,
			status = excluded.status,
			voted_at = excluded.voted_at
	`, optionID, userID, userName, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

// Tally returns one row per option of the meeting, zero-vote options
// included, ordered by accept count descending then decline count
// ascending (best-attended first, ties broken toward fewer decliners).
func (s *Store) Tally(ctx context.Context, meetingID int64) ([]models.TallyRow, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			o.id,
			o.text,
			COALESCE(SUM(CASE WHEN v.status = 'accept' THEN 1 ELSE 0 END), 0) AS accept_count,
			COALESCE(SUM(CASE WHEN v.status = 'decline' THEN 1 ELSE 0 END), 0) AS decline_count
		FROM options o
		LEFT JOIN votes v ON o.id = v.option_id
		WHERE o.meeting_id = $1
		GROUP BY o.id, o.text
		ORDER BY accept_count DESC, decline_count ASC, o.id ASC
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	tally := []models.TallyRow{}
	for rows.Next() {
		var row models.TallyRow
		if err := rows.Scan(&row.OptionID, &row.Text, &row.AcceptCount, &row.DeclineCount); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tally = append(tally, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tally: %w", err)
	}
	return tally, nil
}

// VoteDetail maps each option's text to the display names of its accepters
// and decliners, falling back to the raw responder id when no name was
// resolved at vote time. Options with no votes map to empty lists.
func (s *Store) VoteDetail(ctx context.Context, meetingID int64) (map[string]models.OptionVoters, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.text, v.user_id, v.user_name, v.status
		FROM options o
		LEFT JOIN votes v ON o.id = v.option_id
		WHERE o.meeting_id = $1
		ORDER BY o.id, v.id
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote detail: %w", err)
	}
	defer rows.Close()

	details := map[string]models.OptionVoters{}
	for rows.Next() {
		var text string
		var userID, userName, status sql.NullString
		if err := rows.Scan(&text, &userID, &userName, &status); err != nil {
			return nil, fmt.Errorf("failed to scan vote detail: %w", err)
		}

		voters, ok := details[text]
		if !ok {
			voters = models.OptionVoters{Accepted: []string{}, Declined: []string{}}
		}
		if userID.Valid {
			name := userName.String
			if name == "" {
				name = userID.String
			}
			switch status.String {
			case models.ResponseAccept:
				voters.Accepted = append(voters.Accepted, name)
			case models.ResponseDecline:
				voters.Declined = append(voters.Declined, name)
			}
		}
		details[text] = voters
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vote detail: %w", err)
	}
	return details, nil
}

// SetFinalSelection confirms an option as the meeting's final choice.
// Re-confirmation overwrites the prior choice (the meeting's selection slot
// is unique). The option must belong to the meeting.
func (s *Store) SetFinalSelection(ctx context.Context, meetingID, optionID int64) error {
	var belongs bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM options WHERE id = $1 AND meeting_id = $2)
	`, optionID, meetingID).Scan(&belongs)
	if err != nil {
		return fmt.Errorf("failed to check option: %w", err)
	}
	if !belongs {
		return fmt.Errorf("%w: option %d does not belong to meeting %d", ErrInvalidReference, optionID, meetingID)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO final_selection (meeting_id, option_id, decided_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (meeting_id) DO UPDATE SET
			option_id = excluded.option_id,
			decided_at = excluded.decided_at
	`, meetingID, optionID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert final selection: %w", err)
	}
	return nil
}

// GetFinalSelection returns the meeting's confirmed option, or ErrNotFound
// if none has been set.
func (s *Store) GetFinalSelection(ctx context.Context, meetingID int64) (models.FinalSelection, error) {
	var sel models.FinalSelection
	err := s.db.QueryRowContext(ctx, `
		SELECT f.meeting_id, f.option_id, o.text, f.decided_at
		FROM final_selection f
		JOIN options o ON o.id = f.option_id
		WHERE f.meeting_id = $1
	`, meetingID).Scan(&sel.MeetingID, &sel.OptionID, &sel.OptionText, &sel.DecidedAt)
	if err == sql.ErrNoRows {
		return models.FinalSelection{}, ErrNotFound
	}
	if err != nil {
		return models.FinalSelection{}, fmt.Errorf("failed to query final selection: %w", err)
	}
	return sel, nil
}
