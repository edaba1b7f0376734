package order

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestList_PushBack(t *testing.T) {
	l := New[string]()
	l.PushBack("a")
	l.PushBack("b")
	l.PushBack("c")

	if diff := cmp.Diff([]string{"a", "b", "c"}, l.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	// Pushing an existing key moves it instead of duplicating it.
	l.PushBack("a")
	if diff := cmp.Diff([]string{"b", "c", "a"}, l.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}

func TestList_FrontBack(t *testing.T) {
	l := New[int]()
	if _, ok := l.Front(); ok {
		t.Error("Front() on empty list should return false")
	}
	if _, ok := l.Back(); ok {
		t.Error("Back() on empty list should return false")
	}

	l.PushBack(1)
	l.PushBack(2)

	if k, ok := l.Front(); !ok || k != 1 {
		t.Errorf("Front() = %d, %v, want 1, true", k, ok)
	}
	if k, ok := l.Back(); !ok || k != 2 {
		t.Errorf("Back() = %d, %v, want 2, true", k, ok)
	}
}

func TestList_MoveToBack(t *testing.T) {
	l := New[string]()
	l.PushBack("a")
	l.PushBack("b")

	if !l.MoveToBack("a") {
		t.Error("MoveToBack(a) = false, want true")
	}
	if l.MoveToBack("missing") {
		t.Error("MoveToBack(missing) = true, want false")
	}
	if diff := cmp.Diff([]string{"b", "a"}, l.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Remove(t *testing.T) {
	l := New[string]()
	l.PushBack("a")
	l.PushBack("b")

	if !l.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if l.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}
	if l.Contains("a") {
		t.Error("Contains(a) = true after Remove")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}
