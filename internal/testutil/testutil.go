// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bookquest/bookquest/internal/repository"
)

// TestDatabase is the database name used by integration tests.
const TestDatabase = "bookquest_test"

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// NewTestRepository connects to the document store named by MONGO_URL,
// resets the test collections, and registers cleanup. Skips the test when
// MONGO_URL is unset.
func NewTestRepository(t testing.TB) *repository.Repository {
	t.Helper()

	mongoURL := RequireEnv(t, "MONGO_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, mongoURL, TestDatabase)
	if err != nil {
		t.Fatalf("connect to test document store: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset test collections: %v", err)
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = repo.Close(closeCtx)
	})

	return repo
}
