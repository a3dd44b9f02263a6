package observability

import (
	"strconv"
	"sync"
)

// Metrics keeps in-memory counters for outbound record-service calls.
type Metrics struct {
	mu            sync.Mutex
	responseCount map[string]int64
	failureCount  map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		responseCount: make(map[string]int64),
		failureCount:  make(map[string]int64),
	}
}

// RecordResponse increments the counter for a completed outbound call.
func (m *Metrics) RecordResponse(path, method string, status int) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseCount[key]++
}

// RecordFailure increments the counter for a call that never produced a response.
func (m *Metrics) RecordFailure(path, method string) {
	if m == nil {
		return
	}
	key := path + "|" + method
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failureCount[key]++
}

// ResponseCount reports how many responses were seen for a path/method/status.
func (m *Metrics) ResponseCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.responseCount[key]
}
