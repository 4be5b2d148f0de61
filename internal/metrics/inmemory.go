package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	BooksCreated     uint64 `json:"books_created"`
	BooksUpdated     uint64 `json:"books_updated"`
	BooksDeleted     uint64 `json:"books_deleted"`
	ListQueryCount   uint64 `json:"list_query_count"`
	ListQueryTotalNs int64  `json:"list_query_total_ns"`
	LoginSuccesses   uint64 `json:"login_successes"`
	LoginFailures    uint64 `json:"login_failures"`
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	booksCreated     uint64
	booksUpdated     uint64
	booksDeleted     uint64
	listQueryCount   uint64
	listQueryTotalNs int64
	loginSuccesses   uint64
	loginFailures    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		BooksCreated:     atomic.LoadUint64(&m.booksCreated),
		BooksUpdated:     atomic.LoadUint64(&m.booksUpdated),
		BooksDeleted:     atomic.LoadUint64(&m.booksDeleted),
		ListQueryCount:   atomic.LoadUint64(&m.listQueryCount),
		ListQueryTotalNs: atomic.LoadInt64(&m.listQueryTotalNs),
		LoginSuccesses:   atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:    atomic.LoadUint64(&m.loginFailures),
	}
}

// IncBookCreated increments the book created counter.
func (m *InMemoryRecorder) IncBookCreated() {
	atomic.AddUint64(&m.booksCreated, 1)
}

// IncBookUpdated increments the book updated counter.
func (m *InMemoryRecorder) IncBookUpdated() {
	atomic.AddUint64(&m.booksUpdated, 1)
}

// IncBookDeleted increments the book deleted counter.
func (m *InMemoryRecorder) IncBookDeleted() {
	atomic.AddUint64(&m.booksDeleted, 1)
}

// ObserveListDuration records the duration of a list query.
func (m *InMemoryRecorder) ObserveListDuration(duration time.Duration) {
	atomic.AddUint64(&m.listQueryCount, 1)
	atomic.AddInt64(&m.listQueryTotalNs, duration.Nanoseconds())
}

// IncLogin counts a login attempt by outcome.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginSuccesses, 1)
		return
	}
	atomic.AddUint64(&m.loginFailures, 1)
}
