package ids

import (
	"strings"
	"testing"
	"time"
)

func TestNewIsUniqueWithinBatch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		id := New("topic", now, i%5)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestFormat(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := New("prompt-bd", now, 2)
	if !strings.HasPrefix(id, "prompt-bd-1700000000123-2-") {
		t.Fatalf("unexpected id %q", id)
	}
	if len(id) != len("prompt-bd-1700000000123-2-")+suffixLen {
		t.Fatalf("unexpected id length %q", id)
	}

	r := Random("log", now)
	if !strings.HasPrefix(r, "log-1700000000123-") {
		t.Fatalf("unexpected random id %q", r)
	}
}
