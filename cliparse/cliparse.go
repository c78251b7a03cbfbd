package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               int
	DatabaseURL        string
	DatabaseType       string
	SlackSigningSecret string
	SlackBotToken      string
	SlackChannel       string
}

// ParseFlags validates flags and fills the gaps from the environment.
// A .env file in the working directory is loaded first, if present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("slotvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SlackSigningSecret, "signing-secret", "", "Slack signing secret (prefer env)")
	fs.StringVar(&cfg.SlackBotToken, "bot-token", "", "Slack bot token (prefer env)")
	fs.StringVar(&cfg.SlackChannel, "channel", "", "Default Slack channel ID")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Best effort; absence of a .env file is not an error
	_ = godotenv.Load()

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8090 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// The signing secret MUST be provided: an unconfigured secret would mean
	// accepting unauthenticated webhook traffic, so startup fails instead.
	if cfg.SlackSigningSecret == "" {
		cfg.SlackSigningSecret = os.Getenv("SLACK_SIGNING_SECRET")
	}
	if cfg.SlackSigningSecret == "" {
		return Config{}, errors.New("SLACK_SIGNING_SECRET required")
	}

	// Bot token is optional: without it the server still ingests votes but
	// cannot post messages or resolve display names.
	if cfg.SlackBotToken == "" {
		cfg.SlackBotToken = os.Getenv("SLACK_BOT_TOKEN")
	}
	if cfg.SlackChannel == "" {
		cfg.SlackChannel = os.Getenv("SLACK_CHANNEL")
	}

	return cfg, nil
}
