package model

import (
	"testing"
	"time"
)

func TestBook_IsNew(t *testing.T) {
	t.Parallel()

	now := time.Now()

	fresh := &Book{CreatedAt: now.Add(-5 * time.Minute)}
	if !fresh.IsNew(now) {
		t.Error("book created 5 minutes ago should be new")
	}

	stale := &Book{CreatedAt: now.Add(-15 * time.Minute)}
	if stale.IsNew(now) {
		t.Error("book created 15 minutes ago should not be new")
	}

	// Boundary: exactly at the window edge counts as new.
	edge := &Book{CreatedAt: now.Add(-FreshnessWindow)}
	if !edge.IsNew(now) {
		t.Error("book created exactly at the window edge should be new")
	}
}
