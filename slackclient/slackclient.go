// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package slackclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/slack-go/slack"

	"github.com/danielhkuo/slotvote/models"
)

// lookupTimeout bounds users.info calls so display-name resolution can
// never hold the vote-write path past Slack's acknowledgement window.
const lookupTimeout = 2 * time.Second

// Client wraps the Slack Web API for the two outbound concerns of the
// system: posting poll/decision messages and resolving display names.
type Client struct {
	api            *slack.Client
	defaultChannel string
}

// New returns a Client, or nil when no bot token is configured. A nil
// Client is a valid "Slack disabled" state for the handlers.
func New(botToken, defaultChannel string) *Client {
	if botToken == "" {
		return nil
	}
	return &Client{
		api:            slack.New(botToken),
		defaultChannel: defaultChannel,
	}
}

// buttonValue is the canonical wire encoding carried in vote buttons.
// Package payload parses it as its first extraction strategy; the two
// sides must agree on exactly this encoding.
type buttonValue struct {
	OptionID int64  `json:"option_id"`
	Status   string `json:"status"`
}

// CandidateValue encodes one button's vote payload.
func CandidateValue(optionID int64, status string) string {
	b, _ := json.Marshal(buttonValue{OptionID: optionID, Status: status})
	return string(b)
}

// CandidateBlocks builds the Block Kit body of a poll message: a header,
// then per option a section with an accept and a decline button.
func CandidateBlocks(title string, options []models.Option) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(":calendar: *%s*\nPick the times that work for you.", title), false, false),
			nil, nil,
		),
		slack.NewDividerBlock(),
	}

	for _, opt := range options {
		blocks = append(blocks,
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, "*"+opt.Text+"*", false, false),
				nil, nil,
			),
			slack.NewActionBlock(
				fmt.Sprintf("vote_%d", opt.ID),
				slack.NewButtonBlockElement(
					fmt.Sprintf("vote_accept_%d", opt.ID),
					CandidateValue(opt.ID, models.ResponseAccept),
					slack.NewTextBlockObject(slack.PlainTextType, "Works for me", false, false),
				).WithStyle(slack.StylePrimary),
				slack.NewButtonBlockElement(
					fmt.Sprintf("vote_decline_%d", opt.ID),
					CandidateValue(opt.ID, models.ResponseDecline),
					slack.NewTextBlockObject(slack.PlainTextType, "Can't make it", false, false),
				).WithStyle(slack.StyleDanger),
			),
			slack.NewDividerBlock(),
		)
	}

	return blocks
}

// DecisionMessage renders the final-decision announcement, including the
// tally ranking so the channel sees why the slot won.
func DecisionMessage(title, chosenText string, rows []models.TallyRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":white_check_mark: *%s* is set: *%s*\n", title, chosenText)
	for i, row := range rows {
		fmt.Fprintf(&b, "%s: %s (%d yes / %d no)\n",
			humanize.Ordinal(i+1), row.Text, row.AcceptCount, row.DeclineCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PostCandidates posts the voting message for a meeting and returns the
// message timestamp.
func (c *Client) PostCandidates(ctx context.Context, channelID, title string, options []models.Option) (string, error) {
	if channelID == "" {
		channelID = c.defaultChannel
	}
	if channelID == "" {
		return "", fmt.Errorf("no channel configured")
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(title, false),
		slack.MsgOptionBlocks(CandidateBlocks(title, options)...),
	)
	if err != nil {
		return "", fmt.Errorf("failed to post candidates: %w", err)
	}
	return ts, nil
}

// PostDecision announces the confirmed option to the meeting's channel.
func (c *Client) PostDecision(ctx context.Context, channelID, title, chosenText string, rows []models.TallyRow) error {
	if channelID == "" {
		channelID = c.defaultChannel
	}
	if channelID == "" {
		return fmt.Errorf("no channel configured")
	}

	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(DecisionMessage(title, chosenText, rows), false),
	)
	if err != nil {
		return fmt.Errorf("failed to post decision: %w", err)
	}
	return nil
}

// DisplayName resolves a Slack user id to the best available display name
// (display_name, then real_name, then account name). The call is bounded
// by lookupTimeout; errors and timeouts surface to the caller, which falls
// back to the identity carried in the event envelope.
func (c *Client) DisplayName(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("users.info failed: %w", err)
	}
	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName, nil
	}
	if user.Profile.RealName != "" {
		return user.Profile.RealName, nil
	}
	return user.Name, nil
}
