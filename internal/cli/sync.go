package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/leetcode"
	"github.com/asteroid-belt/leetvault/internal/log"
	"github.com/asteroid-belt/leetvault/internal/syncer"
	"github.com/asteroid-belt/leetvault/internal/vault"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var syncLimit int

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Fetch recent accepted submissions into the vault (alias: s)",
	Long: `Fetch your most recent accepted submissions and materialize a note for
every problem not already in the vault.

Only new problems are written: anything already materialized, or attempted
on an earlier run, is skipped. Running sync repeatedly is safe and cheap.
Use 'leetvault pull' to walk the full submission history instead.

Examples:
  leetvault sync
  leetvault sync --limit 50`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVarP(&syncLimit, "limit", "l", 0, "How many recent submissions to fetch (1-100)")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("sync", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.LogDir); err != nil {
		return trackCLIError("sync", fmt.Errorf("initialize logger: %w", err))
	}
	defer func() { _ = log.Close() }()

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return trackCLIError("sync", fmt.Errorf("initialize database: %w", err))
	}
	defer func() { _ = database.Close() }()

	notes, err := vault.New(cfg.VaultDir)
	if err != nil {
		return trackCLIError("sync", fmt.Errorf("open vault: %w", err))
	}

	coord, err := syncer.New(notes, database, cfg.SyncerConfig())
	if err != nil {
		return trackCLIError("sync", fmt.Errorf("initialize coordinator: %w", err))
	}

	client := leetcode.NewClient(cfg.ClientConfig())

	limit := cfg.Sync.RecentLimit
	if syncLimit > 0 {
		limit = syncLimit
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Printf("%s (%s)\n", headerStyle.Render("SYNCING recent submissions"), cfg.LeetCode.Username)
	fmt.Println(strings.Repeat("─", 50))

	records, err := client.FetchRecent(ctx, limit, true)
	if err != nil {
		return trackCLIError("sync", fmt.Errorf("fetch recent submissions: %w", err))
	}

	log.Printf("Fetched %d recent submission(s)\n", len(records))

	created, err := coord.Reconcile(ctx, records)
	if err != nil {
		return trackCLIError("sync", fmt.Errorf("reconcile: %w", err))
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	for _, rec := range created {
		fmt.Printf("  %s %s (%s)\n", successStyle.Render("+"), rec.Title, rec.Difficulty)
	}

	fmt.Println(strings.Repeat("─", 50))
	if len(created) == 0 {
		fmt.Println("Vault already up to date.")
	} else {
		fmt.Printf("Done! %d new note(s) in %s\n", len(created), notes.Root())
	}

	telemetryClient.TrackSyncCompleted(len(records), len(created), time.Since(start).Milliseconds())

	return nil
}
