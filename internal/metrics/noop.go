package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) AddUsersSeeded(int) {}
func (n *NoopRecorder) IncUserCreated()    {}
func (n *NoopRecorder) IncUserUpdated()    {}
func (n *NoopRecorder) IncUserDeleted()    {}
func (n *NoopRecorder) IncPetCreated()     {}
func (n *NoopRecorder) IncPetDeleted()     {}
func (n *NoopRecorder) IncUsersCacheHit()  {}
func (n *NoopRecorder) IncUsersCacheMiss() {}
