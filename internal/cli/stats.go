package cli

import (
	"fmt"
	"time"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/vault"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vault and sync state statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("stats", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return trackCLIError("stats", fmt.Errorf("initialize database: %w", err))
	}
	defer func() { _ = database.Close() }()

	stats, err := database.GetStats()
	if err != nil {
		return trackCLIError("stats", fmt.Errorf("read stats: %w", err))
	}

	notes, err := vault.New(cfg.VaultDir)
	if err != nil {
		return trackCLIError("stats", fmt.Errorf("open vault: %w", err))
	}
	noteFiles, err := notes.ListProblemNotes()
	if err != nil {
		return trackCLIError("stats", fmt.Errorf("list notes: %w", err))
	}

	fmt.Printf("Vault: %s\n", notes.Root())
	fmt.Printf("Notes materialized: %d\n", len(noteFiles))
	fmt.Printf("Processed slugs: %d\n", stats.ProcessedCount)
	fmt.Printf("Total synced: %d\n", stats.TotalSynced)

	if !stats.LastSyncAt.IsZero() {
		fmt.Printf("\nLast sync: %s\n", stats.LastSyncAt.Local().Format(time.RFC1123))
	} else {
		fmt.Println("\nLast sync: never")
	}
	if !stats.LastFullPullAt.IsZero() {
		fmt.Printf("Last full pull: %s\n", stats.LastFullPullAt.Local().Format(time.RFC1123))
	} else {
		fmt.Println("Last full pull: never")
	}

	if stats.DBSizeBytes > 0 {
		fmt.Printf("\nState db: %s (%.1f KiB)\n", database.Path(), float64(stats.DBSizeBytes)/1024)
	}

	return nil
}
