// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv uses godotenv and never overrides variables that are already set.

# CLI Flags

	-p               Server port
	-static          Directory served at /
	-d               Database URL
	-t               Database type (sqlite or postgres)
	-data-dir        Directory for JSON documents
	-rules           Data quality rules file
	-source          Submission source (tally or notion)
	-fetch-timeout   Upper bound for one full upstream fetch
	-max-cards       Board column capacity
	-log-level       debug, info, warn or error
	-log-format      text or json
	-board-password  Board password

# Environment Variables

Flags fall back to environment variables:

	PORT                  → -p               (3000)
	STATIC_DIR            → -static
	DATABASE_URL          → -d
	DATABASE_TYPE         → -t               (sqlite)
	DATA_DIR              → -data-dir        (data)
	RULES_FILE            → -rules           (rules.yaml)
	SOURCE                → -source          (tally)
	FETCH_TIMEOUT         → -fetch-timeout   (60s)
	MAX_CARDS_PER_COLUMN  → -max-cards       (3)
	LOG_LEVEL             → -log-level       (info)
	LOG_FORMAT            → -log-format      (text)
	BOARD_PASSWORD        → -board-password

Upstream and notification settings are environment only:

	TALLY_API_KEY, TALLY_FORM_ID (ob9Bkx), TALLY_BASE_URL
	NOTION_API_KEY, NOTION_DATABASE_ID, NOTION_BASE_URL
	WEBHOOK_URL
	MQTT_BROKER_URL, MQTT_CLIENT_ID, MQTT_TOPIC, MQTT_USERNAME, MQTT_PASSWORD

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - BOARD_PASSWORD is missing
  - the selected source lacks its credentials
  - DATABASE_TYPE is neither sqlite nor postgres
  - a numeric or duration value does not parse or is not positive
*/
package cliparse
