package vault

import (
	"bytes"
	"fmt"
	"strings"

	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// ReadNoteMetadata parses a document's YAML frontmatter into a map. A
// document without frontmatter yields an empty map, not an error.
func (v *FS) ReadNoteMetadata(rel string) (map[string]any, error) {
	content, err := v.ReadDocument(rel)
	if err != nil {
		return nil, err
	}
	return v.parseMetadata(content)
}

func (v *FS) parseMetadata(content string) (map[string]any, error) {
	var buf bytes.Buffer
	context := parser.NewContext()
	if err := v.md.Convert([]byte(content), &buf, parser.WithContext(context)); err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}
	return normalizeMeta(meta.Get(context)), nil
}

// UpdateDocumentMetadata rewrites a document's frontmatter through merge,
// leaving the body untouched. The whole read-transform-write cycle happens
// under the vault mutex so concurrent updates never lose writes.
func (v *FS) UpdateDocumentMetadata(rel string, merge func(meta map[string]any) map[string]any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	content, err := v.ReadDocument(rel)
	if err != nil {
		return err
	}

	current, err := v.parseMetadata(content)
	if err != nil {
		return err
	}

	merged := merge(current)
	if merged == nil {
		return nil
	}

	encoded, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode frontmatter: %w", err)
	}

	body := documentBody(content)
	rebuilt := "---\n" + string(encoded) + "---\n" + body
	return v.writeLocked(rel, rebuilt)
}

// documentBody returns everything after the frontmatter block, or the whole
// document when there is none.
func documentBody(content string) string {
	if !strings.HasPrefix(content, "---\n") {
		return content
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content
	}
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return body
}

// normalizeMeta converts goldmark-meta's output (which may contain
// map[interface{}]interface{} values) into plain map[string]any trees.
func normalizeMeta(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMeta(val)
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, inner := range val {
			if key, ok := k.(string); ok {
				converted[key] = normalizeValue(inner)
			}
		}
		return converted
	case []any:
		converted := make([]any, len(val))
		for i, inner := range val {
			converted[i] = normalizeValue(inner)
		}
		return converted
	default:
		return v
	}
}

// metaInt reads an integer frontmatter field, tolerating the numeric types
// YAML decoders produce.
func metaInt(m map[string]any, key string) (int, bool) {
	switch val := m[key].(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint64:
		return int(val), true
	case float64:
		return int(val), true
	}
	return 0, false
}
