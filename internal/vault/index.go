package vault

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// The progress index is a single Markdown table, one row per problem id.
const indexHeader = "# Progress\n\n| ID | Problem | Difficulty | Topics | Solved |\n| --- | --- | --- | --- | --- |\n"

type indexRow struct {
	ID         int
	Problem    string
	Difficulty string
	Topics     string
	Solved     string // YYYY-MM-DD, empty when unsolved
}

// UpsertIndexRow merges one record into the progress index: a row with the
// same id is replaced, anything else is preserved, and the table is rewritten
// sorted by solve date descending. Calling it again with the same record is a
// no-op in content terms.
func (v *FS) UpsertIndexRow(rec models.ProblemRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := map[int]indexRow{}
	if content, err := v.ReadDocument(IndexFile); err == nil {
		for _, row := range parseIndexRows(content) {
			rows[row.ID] = row
		}
	}

	rows[rec.ID] = indexRowFor(rec)

	return v.writeLocked(IndexFile, renderIndex(rows))
}

func indexRowFor(rec models.ProblemRecord) indexRow {
	row := indexRow{
		ID:         rec.ID,
		Problem:    "[[" + rec.NoteName() + "]]",
		Difficulty: string(rec.Difficulty),
		Topics:     strings.Join(rec.UniqueTopics(), ", "),
	}
	if solved := rec.SolvedTime(); !solved.IsZero() {
		row.Solved = solved.Format("2006-01-02")
	}
	return row
}

// parseIndexRows extracts data rows from an existing index document. Header,
// separator, and anything that is not a table row are skipped; rows the user
// mangled beyond recognition are dropped rather than guessed at.
func parseIndexRows(content string) []indexRow {
	var rows []indexRow
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		if len(cells) != 5 {
			continue
		}
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		id, err := strconv.Atoi(cells[0])
		if err != nil || id <= 0 {
			continue
		}
		rows = append(rows, indexRow{
			ID:         id,
			Problem:    cells[1],
			Difficulty: cells[2],
			Topics:     cells[3],
			Solved:     cells[4],
		})
	}
	return rows
}

func renderIndex(rows map[int]indexRow) string {
	ordered := make([]indexRow, 0, len(rows))
	for _, row := range rows {
		ordered = append(ordered, row)
	}
	// Most recently solved first; unsolved rows sink; ties stay stable by id.
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Solved != ordered[j].Solved {
			if ordered[i].Solved == "" {
				return false
			}
			if ordered[j].Solved == "" {
				return true
			}
			return ordered[i].Solved > ordered[j].Solved
		}
		return ordered[i].ID < ordered[j].ID
	})

	var b strings.Builder
	b.WriteString(indexHeader)
	for _, row := range ordered {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			row.ID, row.Problem, row.Difficulty, row.Topics, row.Solved)
	}
	return b.String()
}
