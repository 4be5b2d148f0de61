// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncBookCreated()
	IncBookUpdated()
	IncBookDeleted()
	ObserveListDuration(duration time.Duration)
	IncLogin(status string) // status: "success" or "failure"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
