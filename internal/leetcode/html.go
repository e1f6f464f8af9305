package leetcode

import (
	"html"
	"regexp"
	"strings"
)

// Problem descriptions arrive as an HTML fragment. Notes want readable
// Markdown-ish plain text, so the fragment is flattened with a small set of
// structural substitutions before tags are stripped.
var (
	brTagRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	supOpenRe      = regexp.MustCompile(`(?i)<sup>`)
	listItemRe     = regexp.MustCompile(`(?i)<li[^>]*>`)
	blockCloseRe   = regexp.MustCompile(`(?i)</(p|div|ul|ol|li|pre|blockquote|h[1-6])>`)
	anyTagRe       = regexp.MustCompile(`<[^>]*>`)
	trailingWSRe   = regexp.MustCompile(`[ \t]+\n`)
	excessBlanksRe = regexp.MustCompile(`\n{3,}`)
)

// CleanHTML converts a remote HTML description fragment into plain text that
// reads naturally inside a Markdown note. Line breaks and list items keep
// their structure, superscripts become caret notation, entities are decoded,
// and anything that would be parsed as a wiki-link opener is escaped.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}

	s = brTagRe.ReplaceAllString(s, "\n")
	s = supOpenRe.ReplaceAllString(s, "^")
	s = listItemRe.ReplaceAllString(s, "- ")
	s = blockCloseRe.ReplaceAllString(s, "\n")
	s = anyTagRe.ReplaceAllString(s, "")

	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")

	// Escape brackets after entity decoding so decoded &#91; cannot smuggle
	// a [[link]] into the note body.
	s = strings.ReplaceAll(s, "[", `\[`)
	s = strings.ReplaceAll(s, "]", `\]`)

	s = trailingWSRe.ReplaceAllString(s, "\n")
	s = excessBlanksRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
