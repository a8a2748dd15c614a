package ports

// MetricsRecorder receives workflow events for monitoring.
type MetricsRecorder interface {
	ObserveTransition(transition string, err error)
	ObserveNumberCollision()
	SetBacklog(countByStatus map[string]int64)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveTransition(string, error) {}
func (NopMetrics) ObserveNumberCollision()         {}
func (NopMetrics) SetBacklog(map[string]int64)     {}
