package lifo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStrategy_Victim(t *testing.T) {
	s := New[string]()
	s.OnPut("a", false)
	s.OnPut("b", false)

	if got, _ := s.Victim(); got != "b" {
		t.Errorf("Victim() = %q, want %q", got, "b")
	}

	// Gets do not change the order.
	s.OnGet("a")
	if got, _ := s.Victim(); got != "b" {
		t.Errorf("Victim() after OnGet = %q, want %q", got, "b")
	}

	// Re-putting resets the key's standing to newest.
	s.OnPut("a", true)
	if got, _ := s.Victim(); got != "a" {
		t.Errorf("Victim() after re-put = %q, want %q", got, "a")
	}
	if diff := cmp.Diff([]string{"b", "a"}, s.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
