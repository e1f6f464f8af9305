package cli

import (
	"fmt"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/syncer"
	"github.com/asteroid-belt/leetvault/internal/vault"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the processed-problem memory",
	Long: `Clear the persisted set of processed problem slugs.

After a reset, the next sync or pull re-examines every fetched problem
against the vault. Notes are never touched: existing files still win, so
a reset re-attempts earlier failures without duplicating anything.

Examples:
  leetvault reset
  leetvault reset --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("reset", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return trackCLIError("reset", fmt.Errorf("initialize database: %w", err))
	}
	defer func() { _ = database.Close() }()

	notes, err := vault.New(cfg.VaultDir)
	if err != nil {
		return trackCLIError("reset", fmt.Errorf("open vault: %w", err))
	}

	coord, err := syncer.New(notes, database, cfg.SyncerConfig())
	if err != nil {
		return trackCLIError("reset", fmt.Errorf("initialize coordinator: %w", err))
	}

	count := coord.ProcessedCount()
	if count == 0 {
		fmt.Println("Processed set is already empty.")
		return nil
	}

	if !resetYes {
		fmt.Printf("You are about to clear %d processed slug(s).\n", count)
		fmt.Println("\nThe next sync will re-examine every fetched problem against the vault.")
		fmt.Print("\nAre you sure? [y/N]: ")

		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" && response != "yes" && response != "Yes" {
			fmt.Println("Aborting.")
			return nil
		}
	}

	if err := coord.ClearProcessed(); err != nil {
		return trackCLIError("reset", fmt.Errorf("clear processed set: %w", err))
	}

	fmt.Printf("Cleared %d processed slug(s).\n", count)

	telemetryClient.TrackProcessedReset(count)

	return nil
}
