package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/leetvault/internal/leetcode"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// bleed into a test, then applies the overrides.
func clearEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	for _, key := range []string{
		"LEETCODE_USERNAME", "LEETCODE_SESSION", "LEETCODE_CSRF_TOKEN", "LEETCODE_ENDPOINT",
		"LEETVAULT_DIR", "LEETVAULT_VAULT_DIR", "LEETVAULT_MAX_SYNC_LIMIT",
		"LEETVAULT_TELEMETRY_TRACKING_ENABLED",
	} {
		t.Setenv(key, "")
	}
	for key, value := range overrides {
		t.Setenv(key, value)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, strings.HasSuffix(cfg.BaseDir, ".leetvault"))
	assert.True(t, strings.HasSuffix(cfg.VaultDir, "LeetVault"))
	assert.Equal(t, leetcode.DefaultEndpoint, cfg.LeetCode.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.LeetCode.RequestTimeout)
	assert.Equal(t, 3, cfg.LeetCode.MaxRetries)
	assert.Equal(t, 50, cfg.Sync.PageSize)
	assert.Equal(t, 2000, cfg.Sync.MaxSyncLimit)
	assert.Equal(t, 20, cfg.Sync.RecentLimit)
	assert.Equal(t, 10, cfg.Sync.BatchSize)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.LeetCode.Username)
	assert.Empty(t, cfg.LeetCode.Session)
}

func TestLoadFromEnv(t *testing.T) {
	base := t.TempDir()
	vault := filepath.Join(base, "notes")
	clearEnv(t, map[string]string{
		"LEETCODE_USERNAME":        "grace",
		"LEETCODE_SESSION":         "session-cookie",
		"LEETCODE_CSRF_TOKEN":      "csrf-token",
		"LEETCODE_ENDPOINT":        "https://example.test/graphql/",
		"LEETVAULT_DIR":            base,
		"LEETVAULT_VAULT_DIR":      vault,
		"LEETVAULT_MAX_SYNC_LIMIT": "500",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "grace", cfg.LeetCode.Username)
	assert.Equal(t, "session-cookie", cfg.LeetCode.Session)
	assert.Equal(t, "csrf-token", cfg.LeetCode.CSRFToken)
	assert.Equal(t, "https://example.test/graphql/", cfg.LeetCode.Endpoint)
	assert.Equal(t, base, cfg.BaseDir)
	assert.Equal(t, vault, cfg.VaultDir)
	assert.Equal(t, 500, cfg.Sync.MaxSyncLimit)

	// Load creates the state directories.
	info, err := os.Stat(filepath.Join(base, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadIgnoresInvalidSyncLimit(t *testing.T) {
	clearEnv(t, map[string]string{
		"LEETVAULT_DIR":            t.TempDir(),
		"LEETVAULT_MAX_SYNC_LIMIT": "not-a-number",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Sync.MaxSyncLimit)
}

func TestTelemetryOptOut(t *testing.T) {
	clearEnv(t, map[string]string{
		"LEETVAULT_DIR":                        t.TempDir(),
		"LEETVAULT_TELEMETRY_TRACKING_ENABLED": "false",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LeetCode.Username = "grace"
	cfg.LeetCode.Session = "cookie"
	cfg.Sync.MaxSyncLimit = 750

	cc := cfg.ClientConfig()
	assert.Equal(t, "grace", cc.Username)
	assert.Equal(t, "cookie", cc.Session)
	assert.Equal(t, leetcode.DefaultEndpoint, cc.Endpoint)
	assert.Equal(t, 750, cc.MaxSyncLimit)
	assert.Equal(t, 50, cc.PageSize)
}

func TestSyncerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sync.BatchSize = 4
	cfg.Sync.BatchPause = 5 * time.Millisecond

	sc := cfg.SyncerConfig()
	assert.Equal(t, 4, sc.BatchSize)
	assert.Equal(t, 5*time.Millisecond, sc.BatchPause)
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: "/tmp/state", VaultDir: "/tmp/notes"}

	paths := GetPaths(cfg)
	assert.Equal(t, filepath.Join("/tmp/state", "leetvault.db"), paths.Database)
	assert.Equal(t, filepath.Join("/tmp/state", "logs"), paths.LogDir)
	assert.Equal(t, "/tmp/notes", paths.Vault)
}
