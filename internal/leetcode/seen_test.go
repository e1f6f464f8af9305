package leetcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeenSetMarkAndLookup(t *testing.T) {
	s := newSeenSet(100)

	assert.False(t, s.hasID(1))
	assert.False(t, s.hasSlug("two-sum"))

	s.mark(1, "two-sum")
	assert.True(t, s.hasID(1))
	assert.True(t, s.hasSlug("two-sum"))
	assert.False(t, s.hasSlug("three-sum"))
	assert.Equal(t, 1, s.size())

	s.mark(1, "two-sum") // idempotent
	assert.Equal(t, 1, s.size())

	s.reset()
	assert.Equal(t, 0, s.size())
	assert.False(t, s.hasID(1))
	assert.False(t, s.hasSlug("two-sum"))
}

func TestSeenSetIgnoresInvalidIDs(t *testing.T) {
	s := newSeenSet(100)
	s.mark(0, "zero")
	s.mark(-1, "negative")
	assert.Equal(t, 0, s.size())
	assert.False(t, s.hasSlug("zero"))
}

func TestSeenSetResetsAtCapacity(t *testing.T) {
	s := newSeenSet(2)
	s.mark(1, "a")
	s.mark(2, "b")
	assert.Equal(t, 2, s.size())

	// At capacity the set starts over rather than grow without bound.
	s.mark(3, "c")
	assert.Equal(t, 1, s.size())
	assert.True(t, s.hasID(3))
	assert.False(t, s.hasID(1))
}
