package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/leetcode"
	"github.com/asteroid-belt/leetvault/internal/log"
	"github.com/asteroid-belt/leetvault/internal/models"
	"github.com/asteroid-belt/leetvault/internal/syncer"
	"github.com/asteroid-belt/leetvault/internal/vault"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:     "pull",
	Aliases: []string{"p"},
	Short:   "Pull the full submission history into the vault (alias: p)",
	Long: `Pull your complete accepted-submission history and materialize every
problem not already in the vault.

This command:
  1. Pages through the full submission history (requires LEETCODE_SESSION)
  2. Filters out problems already materialized or attempted earlier
  3. Writes notes, topic links, and index rows in small batches

Without a session cookie it falls back to the public recent-submission
feed, which only covers your latest accepted submissions.

Examples:
  # Pull everything
  leetvault pull`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

func runPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("pull", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.LogDir); err != nil {
		return trackCLIError("pull", fmt.Errorf("initialize logger: %w", err))
	}
	defer func() { _ = log.Close() }()

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return trackCLIError("pull", fmt.Errorf("initialize database: %w", err))
	}
	defer func() { _ = database.Close() }()

	notes, err := vault.New(cfg.VaultDir)
	if err != nil {
		return trackCLIError("pull", fmt.Errorf("open vault: %w", err))
	}

	coord, err := syncer.New(notes, database, cfg.SyncerConfig())
	if err != nil {
		return trackCLIError("pull", fmt.Errorf("initialize coordinator: %w", err))
	}

	client := leetcode.NewClient(cfg.ClientConfig())

	if cfg.LeetCode.Session == "" {
		fmt.Println("📦 No LEETCODE_SESSION set. Falling back to the public recent feed.")
	}

	fmt.Println("🔄 Pulling submission history...")
	fmt.Println()

	records, err := client.FetchAll(ctx)
	if err != nil {
		return trackCLIError("pull", fmt.Errorf("fetch history: %w", err))
	}

	log.Printf("   Fetched %d accepted problem(s)\n", len(records))

	// The progress bar total is the new-subset size, which is only known
	// once the first record settles. Callbacks arrive from worker
	// goroutines, so rendering is serialized.
	var mu sync.Mutex
	var bar *ProgressBar

	created, err := coord.ReconcileWithOptions(ctx, records, syncer.ReconcileOptions{
		OnProgress: func(done, total int, slug string) {
			mu.Lock()
			defer mu.Unlock()
			if bar == nil {
				bar = NewProgressBar(total, 15)
			}
			bar.Update(done, slug)
			ClearLine()
			fmt.Print("   " + bar.Render())
		},
	})
	if bar != nil {
		ClearLine()
	}
	if err != nil {
		return trackCLIError("pull", fmt.Errorf("reconcile history: %w", err))
	}

	if len(created) == 0 {
		fmt.Println("   ✓ Vault already up to date")
	} else {
		log.Printf("   ✓ Materialized %d new note(s) in %s\n", len(created), notes.Root())
	}

	_ = database.SetSyncMeta(models.SyncMetaLastFullPull, time.Now().UTC().Format(time.RFC3339))

	fmt.Println("\n⚡ Pull complete!")

	telemetryClient.TrackFullPullCompleted(len(records), len(created), time.Since(start).Milliseconds())

	return nil
}
