package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersSeeded      uint64
	UsersCreated     uint64
	UsersUpdated     uint64
	UsersDeleted     uint64
	PetsCreated      uint64
	PetsDeleted      uint64
	UsersCacheHits   uint64
	UsersCacheMisses uint64
}

// InMemoryRecorder stores metrics in memory for tests and the /metrics endpoint.
type InMemoryRecorder struct {
	usersSeeded    atomic.Uint64
	usersCreated   atomic.Uint64
	usersUpdated   atomic.Uint64
	usersDeleted   atomic.Uint64
	petsCreated    atomic.Uint64
	petsDeleted    atomic.Uint64
	usersCacheHit  atomic.Uint64
	usersCacheMiss atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersSeeded:      m.usersSeeded.Load(),
		UsersCreated:     m.usersCreated.Load(),
		UsersUpdated:     m.usersUpdated.Load(),
		UsersDeleted:     m.usersDeleted.Load(),
		PetsCreated:      m.petsCreated.Load(),
		PetsDeleted:      m.petsDeleted.Load(),
		UsersCacheHits:   m.usersCacheHit.Load(),
		UsersCacheMisses: m.usersCacheMiss.Load(),
	}
}

// AddUsersSeeded adds n to the seeded users counter. Negative values are ignored.
func (m *InMemoryRecorder) AddUsersSeeded(n int) {
	if n > 0 {
		m.usersSeeded.Add(uint64(n))
	}
}

func (m *InMemoryRecorder) IncUserCreated()    { m.usersCreated.Add(1) }
func (m *InMemoryRecorder) IncUserUpdated()    { m.usersUpdated.Add(1) }
func (m *InMemoryRecorder) IncUserDeleted()    { m.usersDeleted.Add(1) }
func (m *InMemoryRecorder) IncPetCreated()     { m.petsCreated.Add(1) }
func (m *InMemoryRecorder) IncPetDeleted()     { m.petsDeleted.Add(1) }
func (m *InMemoryRecorder) IncUsersCacheHit()  { m.usersCacheHit.Add(1) }
func (m *InMemoryRecorder) IncUsersCacheMiss() { m.usersCacheMiss.Add(1) }
