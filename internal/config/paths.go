package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite state store
	LogDir   string // Log files directory
	Vault    string // Markdown vault root
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "leetvault.db"),
		LogDir:   filepath.Join(cfg.BaseDir, "logs"),
		Vault:    cfg.VaultDir,
	}
}

// DefaultBaseDir returns the default state directory (~/.leetvault).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".leetvault"
	}
	return filepath.Join(home, ".leetvault")
}

// DefaultVaultDir returns the default vault location (~/LeetVault). The vault
// sits outside the state directory so it can be opened as a plain note
// collection.
func DefaultVaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "LeetVault"
	}
	return filepath.Join(home, "LeetVault")
}
