package config

import (
	"github.com/asteroid-belt/leetvault/internal/leetcode"
	"github.com/asteroid-belt/leetvault/internal/syncer"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:  DefaultBaseDir(),
		VaultDir: DefaultVaultDir(),

		LeetCode: LeetCodeConfig{
			Endpoint:           leetcode.DefaultEndpoint,
			RequestTimeout:     leetcode.DefaultRequestTimeout,
			MinRequestInterval: leetcode.DefaultMinRequestInterval,
			MaxRetries:         leetcode.DefaultMaxRetries,
			RetryBaseDelay:     leetcode.DefaultRetryBaseDelay,
		},

		Sync: SyncConfig{
			PageSize:     leetcode.DefaultPageSize,
			MaxSyncLimit: leetcode.DefaultMaxSyncLimit,
			RecentLimit:  20,
			BatchSize:    syncer.DefaultBatchSize,
			BatchPause:   syncer.DefaultBatchPause,
		},

		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

// ClientConfig translates the loaded settings into a remote client config.
func (c *Config) ClientConfig() leetcode.Config {
	return leetcode.Config{
		Username:           c.LeetCode.Username,
		Session:            c.LeetCode.Session,
		CSRFToken:          c.LeetCode.CSRFToken,
		Endpoint:           c.LeetCode.Endpoint,
		RequestTimeout:     c.LeetCode.RequestTimeout,
		MinRequestInterval: c.LeetCode.MinRequestInterval,
		MaxRetries:         c.LeetCode.MaxRetries,
		RetryBaseDelay:     c.LeetCode.RetryBaseDelay,
		PageSize:           c.Sync.PageSize,
		MaxSyncLimit:       c.Sync.MaxSyncLimit,
		PageDelay:          leetcode.DefaultPageDelay,
	}
}

// SyncerConfig translates the loaded settings into a coordinator config.
func (c *Config) SyncerConfig() syncer.Config {
	return syncer.Config{
		BatchSize:  c.Sync.BatchSize,
		BatchPause: c.Sync.BatchPause,
	}
}
