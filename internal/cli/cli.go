// Package cli provides the command-line interface for leetvault.
package cli

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/asteroid-belt/leetvault/internal/leetcode"
	"github.com/asteroid-belt/leetvault/internal/telemetry"
	"github.com/asteroid-belt/leetvault/pkg/version"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var telemetryClient telemetry.Client

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "leetvault",
	Short: "Mirror your solved LeetCode history into a local Markdown vault",
	Long: `Mirror your solved LeetCode history into a local Markdown vault.

leetvault fetches your accepted submissions from LeetCode and materializes
each problem as a Markdown note with YAML frontmatter, topic hub
cross-links, and a tabular progress index. Notes are plain files: the
vault opens in Obsidian or any other Markdown tool.

Credentials are read from the environment (or a .env file):
  LEETCODE_USERNAME    your LeetCode username (public recent feed)
  LEETCODE_SESSION     session cookie (full history + solution code)
  LEETCODE_CSRF_TOKEN  optional; negotiated automatically when unset

Telemetry:
  Telemetry is enabled by default, always anonymous, and will never track
  problem slugs, titles, solution code, or IP addresses.

  Opt-out with:
  	LEETVAULT_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
		if cmd.Name() != "leetvault" {
			telemetryClient.TrackAppStarted(cmd.Name(), os.Getenv("LEETCODE_SESSION") != "")
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Track command execution (skip for bare root invocations)
		if cmd.Name() != "leetvault" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.Name(), hasFlags, durationMs)
		}
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(verifyCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)

	// Track app exit for real subcommand runs
	if rootCmd.CalledAs() != "" && rootCmd.CalledAs() != "leetvault" {
		durationMs := time.Since(commandStartTime).Milliseconds()
		telemetryClient.TrackAppExited("cli", durationMs)
	}

	return err
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	errorType := classifyError(err)
	telemetryClient.TrackCLIError(cmdName, errorType)
	return err
}

// classifyError determines the error type for telemetry. Remote call
// failures carry their own classification; everything else is matched
// on message keywords.
func classifyError(err error) string {
	var apiErr *leetcode.APIError
	if errors.As(err, &apiErr) {
		return strings.ToLower(string(apiErr.Kind)) + "_error"
	}

	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "vault", "note"):
		return "vault_error"
	case containsAny(errStr, "network", "timeout", "connection"):
		return "network_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
