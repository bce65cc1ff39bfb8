package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncTripPageCacheHit is a no-op.
func (n *NoopRecorder) IncTripPageCacheHit() {}

// IncTripPageCacheMiss is a no-op.
func (n *NoopRecorder) IncTripPageCacheMiss() {}

// ObserveTripListDuration is a no-op.
func (n *NoopRecorder) ObserveTripListDuration(duration time.Duration) {}

// IncAssignmentAccepted is a no-op.
func (n *NoopRecorder) IncAssignmentAccepted() {}

// IncAssignmentRejected is a no-op.
func (n *NoopRecorder) IncAssignmentRejected(reason string) {}

// IncClientCreated is a no-op.
func (n *NoopRecorder) IncClientCreated() {}

// IncClientUpdated is a no-op.
func (n *NoopRecorder) IncClientUpdated() {}

// IncClientDeleted is a no-op.
func (n *NoopRecorder) IncClientDeleted() {}
