package leetcode

import "sync"

// seenSet tracks problems whose details were already fetched during this
// client's lifetime so repeated syncs can skip redundant detail round trips.
// A slug index lets a submission summary (which carries only a slug before
// detail resolution) be resolved to a known numeric id without a network
// call.
//
// This is a pure optimization: correctness never depends on its contents
// surviving, and it is bounded — at capacity it resets rather than grow
// without limit.
type seenSet struct {
	mu     sync.Mutex
	ids    map[int]struct{}
	bySlug map[string]int
	limit  int
}

func newSeenSet(limit int) *seenSet {
	return &seenSet{
		ids:    make(map[int]struct{}),
		bySlug: make(map[string]int),
		limit:  limit,
	}
}

// mark records a resolved problem identity.
func (s *seenSet) mark(id int, slug string) {
	if id <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) >= s.limit {
		s.ids = make(map[int]struct{})
		s.bySlug = make(map[string]int)
	}
	s.ids[id] = struct{}{}
	if slug != "" {
		s.bySlug[slug] = id
	}
}

// hasID reports whether the numeric id was already fetched.
func (s *seenSet) hasID(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// hasSlug resolves slug to its id via the index and reports whether that id
// was already fetched.
func (s *seenSet) hasSlug(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.bySlug[slug]
	if !ok {
		return false
	}
	_, ok = s.ids[id]
	return ok
}

// size returns the number of tracked ids.
func (s *seenSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// reset clears the set.
func (s *seenSet) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int]struct{})
	s.bySlug = make(map[string]int)
}
