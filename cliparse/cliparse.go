// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceTally  = "tally"
	SourceNotion = "notion"
)

type Config struct {
	Port      int
	StaticDir string

	// Upstream
	Source           string
	TallyAPIKey      string
	TallyFormID      string
	TallyBaseURL     string
	NotionAPIKey     string
	NotionDatabaseID string
	NotionBaseURL    string
	FetchTimeout     time.Duration

	// Storage; file documents under DataDir unless DatabaseURL is set
	DataDir      string
	DatabaseURL  string
	DatabaseType string

	RulesFile string

	// Board
	BoardPassword     string
	MaxCardsPerColumn int

	// Notifications
	WebhookURL    string
	MQTTBrokerURL string
	MQTTClientID  string
	MQTTTopic     string
	MQTTUsername  string
	MQTTPassword  string

	LogLevel  string
	LogFormat string
}

// LoadDotEnv reads KEY=value pairs from path into the environment
// Variables already set win; a missing file is not an error
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads flags, falls back to environment variables, then
// applies defaults and validates
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("activity-board", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory served at /")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (empty = JSON files in data dir)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory for JSON documents")
	fs.StringVar(&cfg.RulesFile, "rules", "", "Data quality rules file")
	fs.StringVar(&cfg.Source, "source", "", "Submission source (tally or notion)")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 0, "Upper bound for one full upstream fetch")
	fs.IntVar(&cfg.MaxCardsPerColumn, "max-cards", 0, "Board column capacity")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "text or json")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BoardPassword, "board-password", "", "Board password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", 3000)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.MaxCardsPerColumn == 0 {
		n, err := envInt("MAX_CARDS_PER_COLUMN", 3)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxCardsPerColumn = n
	}
	if cfg.FetchTimeout == 0 {
		d, err := envDuration("FETCH_TIMEOUT", 60*time.Second)
		if err != nil {
			return Config{}, err
		}
		cfg.FetchTimeout = d
	}

	setDefault(&cfg.StaticDir, "STATIC_DIR", "")
	setDefault(&cfg.DataDir, "DATA_DIR", "data")
	setDefault(&cfg.DatabaseURL, "DATABASE_URL", "")
	setDefault(&cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	setDefault(&cfg.RulesFile, "RULES_FILE", "rules.yaml")
	setDefault(&cfg.Source, "SOURCE", SourceTally)
	setDefault(&cfg.LogLevel, "LOG_LEVEL", "info")
	setDefault(&cfg.LogFormat, "LOG_FORMAT", "text")
	setDefault(&cfg.BoardPassword, "BOARD_PASSWORD", "")

	cfg.TallyAPIKey = os.Getenv("TALLY_API_KEY")
	cfg.TallyFormID = envString("TALLY_FORM_ID", "ob9Bkx")
	cfg.TallyBaseURL = os.Getenv("TALLY_BASE_URL")
	cfg.NotionAPIKey = os.Getenv("NOTION_API_KEY")
	cfg.NotionDatabaseID = os.Getenv("NOTION_DATABASE_ID")
	cfg.NotionBaseURL = os.Getenv("NOTION_BASE_URL")

	cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	cfg.MQTTBrokerURL = os.Getenv("MQTT_BROKER_URL")
	cfg.MQTTClientID = envString("MQTT_CLIENT_ID", "activity-board")
	cfg.MQTTTopic = envString("MQTT_TOPIC", "activity-board/alerts")
	cfg.MQTTUsername = os.Getenv("MQTT_USERNAME")
	cfg.MQTTPassword = os.Getenv("MQTT_PASSWORD")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	// Secrets - MUST be provided
	if cfg.BoardPassword == "" {
		return errors.New("BOARD_PASSWORD required")
	}

	switch cfg.Source {
	case SourceTally:
		if cfg.TallyAPIKey == "" {
			return errors.New("TALLY_API_KEY required for the tally source")
		}
	case SourceNotion:
		if cfg.NotionAPIKey == "" || cfg.NotionDatabaseID == "" {
			return errors.New("NOTION_API_KEY and NOTION_DATABASE_ID required for the notion source")
		}
	default:
		return fmt.Errorf("unknown source %q (use tally or notion)", cfg.Source)
	}

	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return fmt.Errorf("unknown database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.MaxCardsPerColumn <= 0 {
		return errors.New("MAX_CARDS_PER_COLUMN must be positive")
	}
	if cfg.FetchTimeout <= 0 {
		return errors.New("FETCH_TIMEOUT must be positive")
	}
	return nil
}

func setDefault(dst *string, key, def string) {
	if *dst == "" {
		*dst = envString(key, def)
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
