// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. Values are fixed at load time;
// components that need different settings are rebuilt, never reconfigured in
// place.
type Config struct {
	// Base directory for all leetvault state (~/.leetvault)
	BaseDir string

	// VaultDir is the root of the Markdown vault the notes are written to.
	VaultDir string

	// LeetCode remote client settings
	LeetCode LeetCodeConfig

	// Sync reconciliation settings
	Sync SyncConfig

	// Telemetry settings
	Telemetry TelemetryConfig
}

// LeetCodeConfig holds the remote client settings.
type LeetCodeConfig struct {
	// Username whose accepted submissions are mirrored.
	Username string

	// Session is the LEETCODE_SESSION cookie value. Optional; without it
	// only public data is reachable.
	Session string

	// CSRFToken pins the anti-forgery token. Optional; the client
	// negotiates one on demand when empty.
	CSRFToken string

	// Endpoint overrides the GraphQL URL.
	Endpoint string

	RequestTimeout     time.Duration
	MinRequestInterval time.Duration
	MaxRetries         int
	RetryBaseDelay     time.Duration
}

// SyncConfig holds fetch pagination and vault write batching settings.
type SyncConfig struct {
	// PageSize is the history page length for full pulls.
	PageSize int

	// MaxSyncLimit caps how many problems one full pull ingests.
	MaxSyncLimit int

	// RecentLimit is the default fetch size for incremental syncs.
	RecentLimit int

	// BatchSize bounds concurrent note writes during reconciliation.
	BatchSize int

	// BatchPause is the rest between write batches.
	BatchPause time.Duration
}

// TelemetryConfig holds anonymous usage reporting settings.
type TelemetryConfig struct {
	Enabled bool
}

// Load reads configuration from defaults, an optional .env file, and
// environment variables, then makes sure the state directories exist.
func Load() (*Config, error) {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if username := os.Getenv("LEETCODE_USERNAME"); username != "" {
		cfg.LeetCode.Username = username
	}
	if session := os.Getenv("LEETCODE_SESSION"); session != "" {
		cfg.LeetCode.Session = session
	}
	if token := os.Getenv("LEETCODE_CSRF_TOKEN"); token != "" {
		cfg.LeetCode.CSRFToken = token
	}
	if endpoint := os.Getenv("LEETCODE_ENDPOINT"); endpoint != "" {
		cfg.LeetCode.Endpoint = endpoint
	}
	if dir := os.Getenv("LEETVAULT_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if dir := os.Getenv("LEETVAULT_VAULT_DIR"); dir != "" {
		cfg.VaultDir = dir
	}
	if raw := os.Getenv("LEETVAULT_MAX_SYNC_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Sync.MaxSyncLimit = n
		}
	}
	if raw := os.Getenv("LEETVAULT_TELEMETRY_TRACKING_ENABLED"); raw != "" {
		cfg.Telemetry.Enabled = raw == "true" || raw == "1"
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required state directories if they don't exist.
// The vault directory is owned by the vault package and created there.
func ensureDirectories(cfg *Config) error {
	paths := GetPaths(cfg)
	dirs := []string{
		cfg.BaseDir,
		paths.LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
