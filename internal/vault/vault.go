// Package vault implements the Markdown note store: one note per solved
// problem, per-topic hub notes with wiki-links, and a tabular progress index.
// All writes are atomic and idempotent; the vault is the durable record,
// shared with whatever note-taking tool the user points at the directory.
package vault

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// Vault layout, relative to the root.
const (
	ProblemsDir = "problems"
	TopicsDir   = "topics"
	IndexFile   = "Progress.md"
)

// FS is a filesystem-backed vault rooted at a single directory. Methods are
// safe for concurrent use: a vault-wide mutex serializes read-modify-write
// cycles on shared documents (the index, topic hubs, metadata updates).
type FS struct {
	root string
	mu   sync.Mutex
	md   goldmark.Markdown
}

// New opens (creating if needed) a vault rooted at dir.
func New(dir string) (*FS, error) {
	if dir == "" {
		return nil, fmt.Errorf("vault directory is required")
	}
	for _, sub := range []string{"", ProblemsDir, TopicsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create vault directory: %w", err)
		}
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &FS{root: dir, md: md}, nil
}

// Root returns the vault root directory.
func (v *FS) Root() string {
	return v.root
}

// abs resolves a vault-relative path, rejecting anything that would escape
// the root.
func (v *FS) abs(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path %q escapes the vault", rel)
	}
	clean := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("path %q escapes the vault", rel)
	}
	return filepath.Join(v.root, filepath.FromSlash(clean)), nil
}

// DocumentExists reports whether a vault-relative document is present.
func (v *FS) DocumentExists(rel string) bool {
	abs, err := v.abs(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// CreateDocument writes a new document. It fails if the document already
// exists; creation never clobbers user edits.
func (v *FS) CreateDocument(rel, content string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	abs, err := v.abs(rel)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("document %s already exists", rel)
	}
	return atomicWrite(abs, []byte(content))
}

// WriteDocument writes a document, replacing any existing content.
func (v *FS) WriteDocument(rel, content string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.writeLocked(rel, content)
}

func (v *FS) writeLocked(rel, content string) error {
	abs, err := v.abs(rel)
	if err != nil {
		return err
	}
	return atomicWrite(abs, []byte(content))
}

// ReadDocument returns a document's full content.
func (v *FS) ReadDocument(rel string) (string, error) {
	abs, err := v.abs(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", rel, err)
	}
	return string(data), nil
}

// ListDocuments returns the vault-relative paths of all Markdown documents
// under prefix (a vault-relative directory), sorted by name.
func (v *FS) ListDocuments(prefix string) ([]string, error) {
	abs, err := v.abs(prefix)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		docs = append(docs, path.Join(prefix, entry.Name()))
	}
	sort.Strings(docs)
	return docs, nil
}

// ListProblemNotes returns the vault-relative paths of all problem notes.
func (v *FS) ListProblemNotes() ([]string, error) {
	return v.ListDocuments(ProblemsDir)
}

// ListExistingIDs scans every problem note's frontmatter and returns the set
// of problem ids already materialized. The scan reads the vault fresh on
// every call so externally created or deleted notes are always respected.
func (v *FS) ListExistingIDs() (map[int]struct{}, error) {
	notes, err := v.ListProblemNotes()
	if err != nil {
		return nil, err
	}

	ids := make(map[int]struct{}, len(notes))
	for _, rel := range notes {
		m, err := v.ReadNoteMetadata(rel)
		if err != nil {
			// A malformed note is the user's business; it just can't
			// participate in dedup by id.
			continue
		}
		if id, ok := metaInt(m, "id"); ok && id > 0 {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// MaterializeProblem is the composite write for one record: the problem note
// (created only if absent), topic hub links, and the progress index row. Each
// part is idempotent, so re-materializing after a partial failure is safe.
func (v *FS) MaterializeProblem(rec models.ProblemRecord) error {
	rel := path.Join(ProblemsDir, rec.NoteFileName())

	if !v.DocumentExists(rel) {
		if err := v.CreateDocument(rel, RenderNote(rec)); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
	}

	if err := v.EnsureTopicLinks(rec); err != nil {
		return fmt.Errorf("update topic links: %w", err)
	}

	if err := v.UpsertIndexRow(rec); err != nil {
		return fmt.Errorf("update index: %w", err)
	}

	return nil
}

// atomicWrite writes data via a temp file + rename so readers never observe
// a partial document.
func atomicWrite(abs string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := abs + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, abs); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}
