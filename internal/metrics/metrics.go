// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Trip listing metrics
	IncTripPageCacheHit()
	IncTripPageCacheMiss()
	ObserveTripListDuration(duration time.Duration)

	// Trip assignment metrics
	IncAssignmentAccepted()
	IncAssignmentRejected(reason string) // reason: "duplicate_person" or "invalid_trip"

	// Client registry metrics
	IncClientCreated()
	IncClientUpdated()
	IncClientDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
