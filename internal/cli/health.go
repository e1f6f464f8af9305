package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/db"
	"github.com/asteroid-belt/leetvault/internal/leetcode"
	"github.com/asteroid-belt/leetvault/internal/log"
	"github.com/asteroid-belt/leetvault/internal/vault"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check remote connectivity, credentials, vault, and state database",
	Long: `Run a health check over every component: the state database, the note
vault, and the LeetCode API (one low-cost authenticated call).

Exits non-zero when any component is unhealthy.

Examples:
  leetvault health`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

// healthRow is one component's verdict in the health table.
type healthRow struct {
	component string
	ok        bool
	detail    string
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("health", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.LogDir); err != nil {
		return trackCLIError("health", fmt.Errorf("initialize logger: %w", err))
	}
	defer func() { _ = log.Close() }()

	var rows []healthRow

	// State database
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		rows = append(rows, healthRow{"state db", false, err.Error()})
	} else {
		defer func() { _ = database.Close() }()
		if count, cerr := database.CountProcessedSlugs(); cerr != nil {
			rows = append(rows, healthRow{"state db", false, cerr.Error()})
		} else {
			rows = append(rows, healthRow{"state db", true, fmt.Sprintf("%d processed slug(s)", count)})
		}
	}

	// Note vault
	notes, err := vault.New(cfg.VaultDir)
	if err != nil {
		rows = append(rows, healthRow{"vault", false, err.Error()})
	} else {
		if noteFiles, lerr := notes.ListProblemNotes(); lerr != nil {
			rows = append(rows, healthRow{"vault", false, lerr.Error()})
		} else {
			rows = append(rows, healthRow{"vault", true, fmt.Sprintf("%d note(s) at %s", len(noteFiles), notes.Root())})
		}
	}

	// Remote service
	client := leetcode.NewClient(cfg.ClientConfig())
	ok, detail := client.HealthCheck(ctx)
	rows = append(rows, healthRow{"leetcode api", ok, detail})

	printHealthTable(os.Stdout, rows)

	unhealthy := 0
	for _, r := range rows {
		if !r.ok {
			unhealthy++
		}
	}
	telemetryClient.TrackHealthChecked(unhealthy == 0)

	if unhealthy > 0 {
		return trackCLIError("health", fmt.Errorf("%d component(s) unhealthy", unhealthy))
	}
	return nil
}

// printHealthTable displays component verdicts in a formatted table.
func printHealthTable(w io.Writer, rows []healthRow) {
	nameWidth := len("COMPONENT")
	for _, r := range rows {
		if len(r.component) > nameWidth {
			nameWidth = len(r.component)
		}
	}

	_, _ = fmt.Fprintf(w, "%-*s  STATUS  DETAIL\n", nameWidth, "COMPONENT")
	_, _ = fmt.Fprintln(w, strings.Repeat("-", nameWidth+2+40))

	for _, r := range rows {
		status := "ok"
		if !r.ok {
			status = "FAIL"
		}
		_, _ = fmt.Fprintf(w, "%-*s  %-6s  %s\n", nameWidth, r.component, status, r.detail)
	}
}
