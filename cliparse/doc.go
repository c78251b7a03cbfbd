// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded (via godotenv) before
environment fallbacks are applied.

# Config Fields

  - Port: Server listen port (default: 8090)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SlackSigningSecret: Secret for webhook signature verification (required)
  - SlackBotToken: Bot token for outbound messages and user lookup (optional)
  - SlackChannel: Default channel for candidate messages (optional)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-signing-secret  Slack signing secret
	-bot-token       Slack bot token
	-channel         Default Slack channel ID

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	SLACK_SIGNING_SECRET → -signing-secret
	SLACK_BOT_TOKEN      → -bot-token
	SLACK_CHANNEL        → -channel

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SLACK_SIGNING_SECRET must be provided

The signing secret is deliberately not optional. Starting without one would
mean accepting webhook traffic that cannot be authenticated, so the server
fails closed at startup instead of skipping verification at request time.
*/
package cliparse
