package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	TripPageCacheHits        uint64
	TripPageCacheMisses      uint64
	TripListDurationCount    uint64
	TripListDurationTotalNs  int64
	AssignmentsAccepted      uint64
	AssignmentsRejectedDup   uint64
	AssignmentsRejectedTrip  uint64
	AssignmentsRejectedOther uint64
	ClientsCreated           uint64
	ClientsUpdated           uint64
	ClientsDeleted           uint64
}

// InMemoryRecorder stores metrics in memory for tests and the /metrics endpoint.
type InMemoryRecorder struct {
	tripPageCacheHits        uint64
	tripPageCacheMisses      uint64
	tripListDurationCount    uint64
	tripListDurationTotalNs  int64
	assignmentsAccepted      uint64
	assignmentsRejectedDup   uint64
	assignmentsRejectedTrip  uint64
	assignmentsRejectedOther uint64
	clientsCreated           uint64
	clientsUpdated           uint64
	clientsDeleted           uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		TripPageCacheHits:        atomic.LoadUint64(&m.tripPageCacheHits),
		TripPageCacheMisses:      atomic.LoadUint64(&m.tripPageCacheMisses),
		TripListDurationCount:    atomic.LoadUint64(&m.tripListDurationCount),
		TripListDurationTotalNs:  atomic.LoadInt64(&m.tripListDurationTotalNs),
		AssignmentsAccepted:      atomic.LoadUint64(&m.assignmentsAccepted),
		AssignmentsRejectedDup:   atomic.LoadUint64(&m.assignmentsRejectedDup),
		AssignmentsRejectedTrip:  atomic.LoadUint64(&m.assignmentsRejectedTrip),
		AssignmentsRejectedOther: atomic.LoadUint64(&m.assignmentsRejectedOther),
		ClientsCreated:           atomic.LoadUint64(&m.clientsCreated),
		ClientsUpdated:           atomic.LoadUint64(&m.clientsUpdated),
		ClientsDeleted:           atomic.LoadUint64(&m.clientsDeleted),
	}
}

// IncTripPageCacheHit increments the listing cache hit counter.
func (m *InMemoryRecorder) IncTripPageCacheHit() {
	atomic.AddUint64(&m.tripPageCacheHits, 1)
}

// IncTripPageCacheMiss increments the listing cache miss counter.
func (m *InMemoryRecorder) IncTripPageCacheMiss() {
	atomic.AddUint64(&m.tripPageCacheMisses, 1)
}

// ObserveTripListDuration records one listing duration.
func (m *InMemoryRecorder) ObserveTripListDuration(duration time.Duration) {
	atomic.AddUint64(&m.tripListDurationCount, 1)
	atomic.AddInt64(&m.tripListDurationTotalNs, duration.Nanoseconds())
}

// IncAssignmentAccepted increments the accepted assignment counter.
func (m *InMemoryRecorder) IncAssignmentAccepted() {
	atomic.AddUint64(&m.assignmentsAccepted, 1)
}

// IncAssignmentRejected increments the rejection counter for the given reason.
func (m *InMemoryRecorder) IncAssignmentRejected(reason string) {
	switch reason {
	case "duplicate_person":
		atomic.AddUint64(&m.assignmentsRejectedDup, 1)
	case "invalid_trip":
		atomic.AddUint64(&m.assignmentsRejectedTrip, 1)
	default:
		atomic.AddUint64(&m.assignmentsRejectedOther, 1)
	}
}

// IncClientCreated increments the clients created counter.
func (m *InMemoryRecorder) IncClientCreated() {
	atomic.AddUint64(&m.clientsCreated, 1)
}

// IncClientUpdated increments the clients updated counter.
func (m *InMemoryRecorder) IncClientUpdated() {
	atomic.AddUint64(&m.clientsUpdated, 1)
}

// IncClientDeleted increments the clients deleted counter.
func (m *InMemoryRecorder) IncClientDeleted() {
	atomic.AddUint64(&m.clientsDeleted, 1)
}
