package syncer

import (
	"sort"
	"sync"
)

// ProcessedSet is the in-memory view of the persisted processed-slug set. It
// only ever grows during a run; Clear is the one shrinking operation and is
// reserved for an explicit user reset. Persistence is the coordinator's job.
type ProcessedSet struct {
	mu    sync.Mutex
	slugs map[string]struct{}
}

// NewProcessedSet builds a set seeded with the given slugs.
func NewProcessedSet(slugs []string) *ProcessedSet {
	s := &ProcessedSet{slugs: make(map[string]struct{}, len(slugs))}
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		s.slugs[slug] = struct{}{}
	}
	return s
}

// Contains reports whether slug has already been through materialization.
func (s *ProcessedSet) Contains(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slugs[slug]
	return ok
}

// Add marks the given slugs as processed. Empty slugs are ignored.
func (s *ProcessedSet) Add(slugs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		s.slugs[slug] = struct{}{}
	}
}

// Clear empties the set.
func (s *ProcessedSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slugs = make(map[string]struct{})
}

// Len reports the number of processed slugs.
func (s *ProcessedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slugs)
}

// Slugs returns the processed slugs in sorted order.
func (s *ProcessedSet) Slugs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.slugs))
	for slug := range s.slugs {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
