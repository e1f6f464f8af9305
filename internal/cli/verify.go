package cli

import (
	"fmt"
	"strings"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/syncer"
	"github.com/asteroid-belt/leetvault/internal/vault"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that every note carries the required metadata",
	Long: `Scan every problem note in the vault and report notes whose frontmatter
is unreadable or missing required fields (id, title, slug, difficulty,
status, url).

The scan is read-only: nothing is repaired or rewritten.

Examples:
  leetvault verify`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("verify", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return trackCLIError("verify", fmt.Errorf("initialize database: %w", err))
	}
	defer func() { _ = database.Close() }()

	notes, err := vault.New(cfg.VaultDir)
	if err != nil {
		return trackCLIError("verify", fmt.Errorf("open vault: %w", err))
	}

	coord, err := syncer.New(notes, database, cfg.SyncerConfig())
	if err != nil {
		return trackCLIError("verify", fmt.Errorf("initialize coordinator: %w", err))
	}

	report, err := coord.ValidateIntegrity(ctx)
	if err != nil {
		return trackCLIError("verify", fmt.Errorf("validate vault: %w", err))
	}

	telemetryClient.TrackIntegrityChecked(report.Scanned, len(report.Issues))

	if report.Valid() {
		fmt.Printf("Scanned %d note(s): all carry the required metadata.\n", report.Scanned)
		return nil
	}

	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	fmt.Printf("Scanned %d note(s), found %d issue(s):\n\n", report.Scanned, len(report.Issues))
	for _, issue := range report.Issues {
		if issue.Reason != "" {
			fmt.Printf("  %s %s: %s\n", warnStyle.Render("WARN"), issue.Note, issue.Reason)
			continue
		}
		fmt.Printf("  %s %s: missing %s\n", warnStyle.Render("WARN"), issue.Note, strings.Join(issue.Missing, ", "))
	}
	fmt.Println("\nIssues are reported only; notes are never rewritten.")

	return nil
}
