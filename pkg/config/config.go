package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the full runtime configuration shared by the API server and the lambdas.
type Config struct {
	Store     StoreConfig     `toml:"store"`
	DynamoDB  DynamoDBConfig  `toml:"dynamodb"`
	Queue     QueueConfig     `toml:"queue"`
	Server    ServerConfig    `toml:"server"`
	Escrow    EscrowConfig    `toml:"escrow"`
	Wallets   WalletsConfig   `toml:"wallets"`
	Websocket WebsocketConfig `toml:"websocket"`
	Redis     RedisConfig     `toml:"redis"`
	LogLevel  string          `toml:"log_level"`
}

// StoreConfig selects the storage backend.
type StoreConfig struct {
	Backend string `toml:"backend"`
}

// DynamoDBConfig names the tables used by the dynamodb backend.
type DynamoDBConfig struct {
	WagersTable      string `toml:"wagers_table"`
	IndexTable       string `toml:"index_table"`
	WalletsTable     string `toml:"wallets_table"`
	LedgerTable      string `toml:"ledger_table"`
	EventsTable      string `toml:"events_table"`
	ConnectionsTable string `toml:"connections_table"`
}

// QueueConfig points at the delayed resolution queue. An empty URL disables
// delayed resolution.
type QueueConfig struct {
	SQSQueueURL string `toml:"sqs_queue_url"`
}

type ServerConfig struct {
	Port           int  `toml:"port"`
	MetricsEnabled bool `toml:"metrics_enabled"`
}

// EscrowConfig holds the ledger parameters fixed at startup.
type EscrowConfig struct {
	Arbiter    string   `toml:"arbiter"`
	StaleAfter duration `toml:"stale_after"`
}

type WalletsConfig struct {
	SeedBalance int64 `toml:"seed_balance"`
}

// WebsocketConfig selects how committed events reach websocket clients:
// "local" pushes to clients of this process, "redis" relays through Redis to
// every instance, "apigateway" posts to API Gateway connections and "none"
// disables the feed.
type WebsocketConfig struct {
	Mode        string `toml:"mode"`
	APIEndpoint string `toml:"api_endpoint"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"

	WebsocketNone       = "none"
	WebsocketLocal      = "local"
	WebsocketRedis      = "redis"
	WebsocketAPIGateway = "apigateway"
)

// Defaults returns the configuration used when nothing overrides it. The
// arbiter has no default and must always be configured.
func Defaults() Config {
	return Config{
		Store: StoreConfig{Backend: BackendMemory},
		DynamoDB: DynamoDBConfig{
			WagersTable:      "wagers",
			IndexTable:       "wager-index",
			WalletsTable:     "wallets",
			LedgerTable:      "ledger",
			EventsTable:      "wager-events",
			ConnectionsTable: "websocket-connections",
		},
		Server: ServerConfig{
			Port:           8080,
			MetricsEnabled: true,
		},
		Escrow: EscrowConfig{
			StaleAfter: duration{24 * time.Hour},
		},
		Wallets: WalletsConfig{
			SeedBalance: 1000,
		},
		Websocket: WebsocketConfig{
			Mode: WebsocketLocal,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "wager-escrow:events",
		},
		LogLevel: "info",
	}
}

var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	if l, ok := validLogLevels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// StaleAfter is how long a matched wager may wait for resolution before the
// reconciliation job reports it.
func (c *Config) StaleAfter() time.Duration {
	return c.Escrow.StaleAfter.Duration
}

// Validate checks Config for invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if _, ok := validLogLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if strings.TrimSpace(c.Escrow.Arbiter) == "" {
		errs = append(errs, "escrow: arbiter must be set")
	}
	if c.Escrow.StaleAfter.Duration <= 0 {
		errs = append(errs, "escrow: stale_after must be positive")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		d := c.DynamoDB
		if d.WagersTable == "" || d.IndexTable == "" || d.WalletsTable == "" || d.LedgerTable == "" || d.EventsTable == "" {
			errs = append(errs, "dynamodb: wagers, index, wallets, ledger and events tables must all be set")
		}
	default:
		errs = append(errs, fmt.Sprintf("store: unknown backend %q (valid: memory, dynamodb)", c.Store.Backend))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}

	if c.Wallets.SeedBalance < 0 {
		errs = append(errs, "wallets: seed_balance must not be negative")
	}

	switch c.Websocket.Mode {
	case WebsocketNone, WebsocketLocal:
	case WebsocketRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr is required for websocket mode redis")
		}
	case WebsocketAPIGateway:
		if c.Websocket.APIEndpoint == "" {
			errs = append(errs, "websocket: api_endpoint is required for websocket mode apigateway")
		}
		if c.Store.Backend != BackendDynamoDB || c.DynamoDB.ConnectionsTable == "" {
			errs = append(errs, "websocket: mode apigateway needs the dynamodb backend and a connections table")
		}
	default:
		errs = append(errs, fmt.Sprintf("websocket: unknown mode %q (valid: none, local, redis, apigateway)", c.Websocket.Mode))
	}

	if len(errs) > 0 {
		return errors.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}
