package cli

import (
	"fmt"
	"path"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/leetvault/internal/config"
	"github.com/asteroid-belt/leetvault/internal/leetcode"
	"github.com/asteroid-belt/leetvault/internal/log"
	"github.com/asteroid-belt/leetvault/internal/models"
	"github.com/asteroid-belt/leetvault/internal/vault"
)

var detailCopy bool

var detailCmd = &cobra.Command{
	Use:   "detail <slug>",
	Short: "Show a problem's description in the terminal",
	Long: `Fetch one problem by its URL slug and render the description as styled
Markdown in the terminal.

With --copy, the solution code from the problem's vault note is placed on
the clipboard. Solution code reaches the vault through 'leetvault pull'
with a session cookie configured.

Examples:
  leetvault detail two-sum
  leetvault detail two-sum --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func init() {
	detailCmd.Flags().BoolVarP(&detailCopy, "copy", "c", false, "Copy the note's solution code to the clipboard")
}

func runDetail(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	slug := args[0]

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("detail", fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.LogDir); err != nil {
		return trackCLIError("detail", fmt.Errorf("initialize logger: %w", err))
	}
	defer func() { _ = log.Close() }()

	client := leetcode.NewClient(cfg.ClientConfig())

	rec, err := client.FetchDetail(ctx, slug)
	if err != nil {
		return trackCLIError("detail", fmt.Errorf("fetch problem: %w", err))
	}

	fmt.Print(RenderMarkdown(detailMarkdown(rec)))

	copied := false
	if detailCopy {
		copied = copySolutionCode(cfg.VaultDir, rec)
	}

	telemetryClient.TrackProblemDetailViewed(string(rec.Difficulty), copied)

	return nil
}

// detailMarkdown assembles the terminal document for one problem.
func detailMarkdown(rec models.ProblemRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d. %s\n\n", rec.ID, rec.Title)
	fmt.Fprintf(&b, "Difficulty: **%s**\n\n", rec.Difficulty)
	if topics := rec.UniqueTopics(); len(topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n\n", strings.Join(topics, ", "))
	}
	if rec.Description != "" {
		b.WriteString(rec.Description)
		b.WriteString("\n")
	}
	if rec.URL != "" {
		fmt.Fprintf(&b, "\n%s\n", rec.URL)
	}
	return b.String()
}

// copySolutionCode copies the solution block of the problem's vault note to
// the clipboard. Reports whether anything was copied; failures are printed,
// not raised, so a missing note never fails the command.
func copySolutionCode(vaultDir string, rec models.ProblemRecord) bool {
	notes, err := vault.New(vaultDir)
	if err != nil {
		fmt.Printf("Cannot open vault: %v\n", err)
		return false
	}

	rel := path.Join(vault.ProblemsDir, rec.NoteFileName())
	if !notes.DocumentExists(rel) {
		fmt.Println("No vault note for this problem yet. Run 'leetvault pull' first.")
		return false
	}

	doc, err := notes.ReadDocument(rel)
	if err != nil {
		fmt.Printf("Cannot read note: %v\n", err)
		return false
	}

	code := solutionCode(doc)
	if code == "" {
		fmt.Println("The note carries no solution code. Pull with LEETCODE_SESSION set to capture it.")
		return false
	}

	if err := clipboard.WriteAll(code); err != nil {
		fmt.Printf("Clipboard copy failed: %v\n", err)
		return false
	}

	fmt.Println("Solution code copied to clipboard.")
	return true
}

// solutionCode extracts the fenced code block under the "## Solution"
// heading of a materialized note. Returns "" when the note has none.
func solutionCode(doc string) string {
	_, after, found := strings.Cut(doc, "\n## Solution\n")
	if !found {
		return ""
	}
	fenceStart := strings.Index(after, "```")
	if fenceStart < 0 {
		return ""
	}
	rest := after[fenceStart+3:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return ""
	}
	body := rest[nl+1:]
	fenceEnd := strings.Index(body, "\n```")
	if fenceEnd < 0 {
		return ""
	}
	return body[:fenceEnd]
}
