// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Seed metrics
	AddUsersSeeded(n int)

	// Directory metrics
	IncUserCreated()
	IncUserUpdated()
	IncUserDeleted()
	IncPetCreated()
	IncPetDeleted()

	// Users list cache
	IncUsersCacheHit()
	IncUsersCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
