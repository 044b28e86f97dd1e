package pipeline

import (
	"strings"
	"testing"
)

func TestGenerateULIDSorted(t *testing.T) {
	prev := ""
	seen := map[string]bool{}
	for range 1000 {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26 characters, got %q", id)
		}
		if strings.Trim(id, crockford) != "" {
			t.Fatalf("non-Crockford character in %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if id <= prev {
			t.Fatalf("ids not increasing: %q after %q", id, prev)
		}
		prev = id
	}
}

func TestEncodeULID(t *testing.T) {
	var zero [16]byte
	if got := encodeULID(zero); got != strings.Repeat("0", 26) {
		t.Fatalf("unexpected zero encoding %q", got)
	}
	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	if got := encodeULID(ones); got != "7"+strings.Repeat("Z", 25) {
		t.Fatalf("unexpected max encoding %q", got)
	}
}
