// Package models defines the core data structures for leetvault.
package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Difficulty is the remote service's difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulties returns all valid difficulty tiers.
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// DifficultyFromRemote maps the remote display value ("Easy", "Medium", "Hard")
// to a Difficulty. Unknown values map to DifficultyMedium.
func DifficultyFromRemote(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Status is the local solve status of a problem.
type Status string

const (
	StatusSolved    Status = "solved"
	StatusAttempted Status = "attempted"
	StatusTodo      Status = "todo"
)

// SubmissionDetail holds per-submission data that is only available with an
// authenticated session.
type SubmissionDetail struct {
	Runtime    string  `json:"runtime"`
	Memory     string  `json:"memory"`
	RuntimePct float64 `json:"runtime_percentile"`
	MemoryPct  float64 `json:"memory_percentile"`
	Code       string  `json:"code"`
	Lang       string  `json:"lang"`
}

// ProblemRecord is the canonical unit of work: one problem as fetched from the
// remote service. Records are constructed per fetch and never mutated after
// construction; persistence is the note vault's responsibility.
type ProblemRecord struct {
	ID          int               `json:"id"`   // remote numeric id; primary dedup key once known
	Slug        string            `json:"slug"` // URL-safe identifier; secondary dedup key
	Title       string            `json:"title"`
	Difficulty  Difficulty        `json:"difficulty"`
	Topics      []string          `json:"topics"` // insertion order = remote relevance order
	Status      Status            `json:"status"`
	SolvedAt    int64             `json:"solved_at"` // epoch seconds; 0 = not solved
	URL         string            `json:"url"`
	Description string            `json:"description"`
	Detail      *SubmissionDetail `json:"detail,omitempty"`
}

// unsafeFileChars matches characters that are illegal in note file names,
// either on common filesystems or inside wiki-links.
var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|\[\]#^]`)

// NoteFileName derives a filesystem-safe note file name from the title.
// Falls back to the slug, then the numeric id, when the title is unusable.
func (r ProblemRecord) NoteFileName() string {
	name := unsafeFileChars.ReplaceAllString(r.Title, "")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = r.Slug
	}
	if name == "" {
		name = fmt.Sprintf("problem-%d", r.ID)
	}
	return name + ".md"
}

// NoteName is NoteFileName without the .md extension, usable in wiki-links.
func (r ProblemRecord) NoteName() string {
	return strings.TrimSuffix(r.NoteFileName(), ".md")
}

// SolvedTime returns SolvedAt as a time.Time, or the zero time when unsolved.
func (r ProblemRecord) SolvedTime() time.Time {
	if r.SolvedAt <= 0 {
		return time.Time{}
	}
	return time.Unix(r.SolvedAt, 0).UTC()
}

// IsSolved reports whether the record carries a solve timestamp.
func (r ProblemRecord) IsSolved() bool {
	return r.Status == StatusSolved && r.SolvedAt > 0
}

// UniqueTopics returns the topics with duplicates removed, preserving the
// remote relevance order. The remote occasionally repeats a topic tag.
func (r ProblemRecord) UniqueTopics() []string {
	if len(r.Topics) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(r.Topics))
	out := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SortBySolvedDesc orders records most recently solved first. Ties are broken
// by numeric id so output is deterministic.
func SortBySolvedDesc(records []ProblemRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SolvedAt != records[j].SolvedAt {
			return records[i].SolvedAt > records[j].SolvedAt
		}
		return records[i].ID < records[j].ID
	})
}
