package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown content using Glamour for terminal display.
// Falls back to the raw content if rendering fails.
func RenderMarkdown(content string) string {
	if content == "" {
		return ""
	}

	// Auto style detection picks the best rendering style for the terminal
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n") + "\n"
}
