package syncer

import (
	"reflect"
	"testing"
)

func TestProcessedSet(t *testing.T) {
	s := NewProcessedSet([]string{"two-sum", "three-sum", ""})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (empty slug ignored)", s.Len())
	}
	if !s.Contains("two-sum") {
		t.Error("Contains(two-sum) = false, want true")
	}
	if s.Contains("coin-change") {
		t.Error("Contains(coin-change) = true, want false")
	}

	s.Add("coin-change", "", "two-sum")
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3 after Add", s.Len())
	}

	want := []string{"coin-change", "three-sum", "two-sum"}
	if got := s.Slugs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Slugs() = %v, want %v", got, want)
	}

	s.Clear()
	if s.Len() != 0 || s.Contains("two-sum") {
		t.Errorf("Clear() left %d slugs behind", s.Len())
	}
}
