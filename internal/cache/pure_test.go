package cache

import "testing"

func TestHashIP(t *testing.T) {
	t.Parallel()

	h1 := hashIP("203.0.113.10")
	h2 := hashIP("203.0.113.10")
	h3 := hashIP("203.0.113.11")

	if h1 != h2 {
		t.Error("same IP should hash identically")
	}
	if h1 == h3 {
		t.Error("different IPs should hash differently")
	}
	if len(h1) != 16 {
		t.Errorf("hash length = %d, want 16 hex chars", len(h1))
	}
	if h1 == "203.0.113.10" {
		t.Error("raw IP must not appear in the key")
	}
}
