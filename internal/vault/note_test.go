package vault

import (
	"strings"
	"testing"

	"github.com/asteroid-belt/leetvault/internal/models"
)

func TestRenderNote(t *testing.T) {
	rec := testRecord()
	rec.Detail = &models.SubmissionDetail{
		Runtime:    "4 ms",
		Memory:     "6.2 MB",
		RuntimePct: 95.5,
		MemoryPct:  80.1,
		Code:       "func twoSum(nums []int, target int) []int {\n\treturn nil\n}",
		Lang:       "golang",
	}

	note := RenderNote(rec)

	wantFragments := []string{
		"---\n",
		"id: 1\n",
		"title: Two Sum\n",
		"slug: two-sum\n",
		"difficulty: easy\n",
		"status: solved\n",
		"solved_at:",
		"url: https://leetcode.com/problems/two-sum/\n",
		"- leetcode/easy\n",
		"# 1. Two Sum\n",
		"**Difficulty:** Easy\n",
		"**Topics:** [[Array]], [[Hash Table]]\n",
		"**Solved:** 2025-06-01\n",
		"## Description",
		"return indices of the two numbers",
		"## Solution",
		"```go\nfunc twoSum(nums []int, target int) []int {",
		"Runtime 4 ms (beats 95.5%) · Memory 6.2 MB (beats 80.1%)",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(note, fragment) {
			t.Errorf("note missing fragment %q\n%s", fragment, note)
		}
	}
}

func TestRenderNoteWithoutDetail(t *testing.T) {
	note := RenderNote(testRecord())

	if strings.Contains(note, "## Solution") {
		t.Error("note should not have a solution section without submission detail")
	}
	if strings.Contains(note, "```") {
		t.Error("note should not have a code fence without submission detail")
	}
}

func TestRenderNotePartialRecord(t *testing.T) {
	// A record from a bare detail fetch has no solve status or timestamp.
	rec := models.ProblemRecord{
		ID:         322,
		Slug:       "coin-change",
		Title:      "Coin Change",
		Difficulty: models.DifficultyMedium,
		URL:        "https://leetcode.com/problems/coin-change/",
	}

	note := RenderNote(rec)

	if strings.Contains(note, "status:") {
		t.Error("partial record should not render a status field")
	}
	if strings.Contains(note, "solved_at:") {
		t.Error("partial record should not render a solved_at field")
	}
	if strings.Contains(note, "**Solved:**") {
		t.Error("partial record should not render a solved line")
	}
	if !strings.Contains(note, "# 322. Coin Change") {
		t.Errorf("missing heading:\n%s", note)
	}
}

func TestRenderedNoteRoundTripsThroughMetadata(t *testing.T) {
	v := testVault(t)
	rec := testRecord()

	if err := v.CreateDocument("problems/note.md", RenderNote(rec)); err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}

	m, err := v.ReadNoteMetadata("problems/note.md")
	if err != nil {
		t.Fatalf("ReadNoteMetadata() error = %v", err)
	}

	if id, ok := metaInt(m, "id"); !ok || id != rec.ID {
		t.Errorf("id = %v, want %d", m["id"], rec.ID)
	}
	if m["slug"] != rec.Slug {
		t.Errorf("slug = %v, want %s", m["slug"], rec.Slug)
	}
	if m["difficulty"] != string(rec.Difficulty) {
		t.Errorf("difficulty = %v, want %s", m["difficulty"], rec.Difficulty)
	}
	if m["status"] != string(rec.Status) {
		t.Errorf("status = %v, want %s", m["status"], rec.Status)
	}
}

func TestFenceLang(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"golang", "go"},
		{"python3", "python"},
		{"c++", "cpp"},
		{"cpp", "cpp"},
		{"Java", "java"},
		{"", "text"},
	}
	for _, tt := range tests {
		if got := fenceLang(tt.in); got != tt.want {
			t.Errorf("fenceLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
