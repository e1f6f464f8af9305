package vault

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// noteMeta is the frontmatter carried by every problem note. Field order
// here is the order in the file.
type noteMeta struct {
	ID         int      `yaml:"id"`
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug"`
	Difficulty string   `yaml:"difficulty"`
	Status     string   `yaml:"status,omitempty"`
	Topics     []string `yaml:"topics,omitempty"`
	SolvedAt   string   `yaml:"solved_at,omitempty"`
	URL        string   `yaml:"url"`
	Tags       []string `yaml:"tags"`
}

// RenderNote produces the full Markdown document for one problem record:
// YAML frontmatter, a heading, metadata lines with topic wiki-links, the
// cleaned description, and the submitted solution when available.
func RenderNote(rec models.ProblemRecord) string {
	topics := rec.UniqueTopics()

	fm := noteMeta{
		ID:         rec.ID,
		Title:      rec.Title,
		Slug:       rec.Slug,
		Difficulty: string(rec.Difficulty),
		Status:     string(rec.Status),
		Topics:     topics,
		URL:        rec.URL,
		Tags:       []string{"leetcode", "leetcode/" + string(rec.Difficulty)},
	}
	if solved := rec.SolvedTime(); !solved.IsZero() {
		fm.SolvedAt = solved.Format(time.RFC3339)
	}

	var b strings.Builder
	b.WriteString("---\n")
	if encoded, err := yaml.Marshal(fm); err == nil {
		b.Write(encoded)
	}
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %d. %s\n\n", rec.ID, rec.Title)
	fmt.Fprintf(&b, "**Difficulty:** %s\n", titleCase(string(rec.Difficulty)))
	if len(topics) > 0 {
		links := make([]string, len(topics))
		for i, topic := range topics {
			links[i] = "[[" + topic + "]]"
		}
		fmt.Fprintf(&b, "**Topics:** %s\n", strings.Join(links, ", "))
	}
	if solved := rec.SolvedTime(); !solved.IsZero() {
		fmt.Fprintf(&b, "**Solved:** %s\n", solved.Format("2006-01-02"))
	}
	if rec.URL != "" {
		fmt.Fprintf(&b, "**Link:** [%s](%s)\n", rec.Slug, rec.URL)
	}

	if rec.Description != "" {
		b.WriteString("\n## Description\n\n")
		b.WriteString(rec.Description)
		b.WriteString("\n")
	}

	if d := rec.Detail; d != nil && d.Code != "" {
		b.WriteString("\n## Solution\n\n")
		fmt.Fprintf(&b, "```%s\n%s\n```\n", fenceLang(d.Lang), strings.TrimRight(d.Code, "\n"))
		if d.Runtime != "" || d.Memory != "" {
			b.WriteString("\n")
			fmt.Fprintf(&b, "Runtime %s (beats %.1f%%) · Memory %s (beats %.1f%%)\n",
				d.Runtime, d.RuntimePct, d.Memory, d.MemoryPct)
		}
	}

	return b.String()
}

// fenceLang maps the remote's language names onto common code-fence
// identifiers.
func fenceLang(lang string) string {
	switch strings.ToLower(lang) {
	case "golang":
		return "go"
	case "python3":
		return "python"
	case "c++", "cpp":
		return "cpp"
	case "":
		return "text"
	default:
		return strings.ToLower(lang)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
