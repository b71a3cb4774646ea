package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load builds the configuration from the defaults, an optional TOML file,
// a .env file and the process environment, in that order of precedence.
// When path is empty the file named by WAGER_CONFIG is used, if any. The
// returned Config has NOT been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("WAGER_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads the environment variables the deployment sets and
// overwrites the corresponding Config fields when a variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Store.Backend, "STORE_BACKEND")

	setStr(&cfg.DynamoDB.WagersTable, "DYNAMODB_WAGERS_TABLE_NAME")
	setStr(&cfg.DynamoDB.IndexTable, "DYNAMODB_INDEX_TABLE_NAME")
	setStr(&cfg.DynamoDB.WalletsTable, "DYNAMODB_WALLETS_TABLE_NAME")
	setStr(&cfg.DynamoDB.LedgerTable, "DYNAMODB_LEDGER_TABLE_NAME")
	setStr(&cfg.DynamoDB.EventsTable, "DYNAMODB_EVENTS_TABLE_NAME")
	setStr(&cfg.DynamoDB.ConnectionsTable, "DYNAMODB_CONNECTIONS_TABLE_NAME")

	setStr(&cfg.Queue.SQSQueueURL, "SQS_QUEUE_URL")

	setInt(&cfg.Server.Port, "HTTP_PORT")
	setBool(&cfg.Server.MetricsEnabled, "METRICS_ENABLED")

	setStr(&cfg.Escrow.Arbiter, "ARBITER_ID")
	setDuration(&cfg.Escrow.StaleAfter, "STALE_AFTER")

	setInt64(&cfg.Wallets.SeedBalance, "WALLET_SEED_BALANCE")

	setStr(&cfg.Websocket.Mode, "WEBSOCKET_MODE")
	setStr(&cfg.Websocket.APIEndpoint, "WEBSOCKET_API_ENDPOINT")

	setStr(&cfg.Redis.Addr, "REDIS_ADDR")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setStr(&cfg.Redis.Channel, "REDIS_CHANNEL")

	setStr(&cfg.LogLevel, "LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
