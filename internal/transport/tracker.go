package transport

import "sync"

// Tracker reference-counts in-flight requests and drives the busy flag.
// The flag is true iff at least one request is outstanding.
type Tracker struct {
	mu       sync.Mutex
	count    int
	onChange func(bool)
}

// NewTracker builds a tracker. onChange may be nil; when set it fires
// on busy-flag edges only, after the count has been updated.
func NewTracker(onChange func(bool)) *Tracker {
	return &Tracker{onChange: onChange}
}

// Show marks one more request in flight. The 0→1 transition raises the flag.
func (t *Tracker) Show() {
	t.mu.Lock()
	t.count++
	raised := t.count == 1
	t.mu.Unlock()

	if raised && t.onChange != nil {
		t.onChange(true)
	}
}

// Hide marks one request complete. Unmatched calls are no-ops: the
// count is floored at zero and never raises a spurious busy signal.
func (t *Tracker) Hide() {
	t.mu.Lock()
	lowered := false
	if t.count > 0 {
		t.count--
		lowered = t.count == 0
	}
	t.mu.Unlock()

	if lowered && t.onChange != nil {
		t.onChange(false)
	}
}

// Reset forces the count to zero and lowers the flag, for route-level
// cleanup that abandons pending requests.
func (t *Tracker) Reset() {
	t.mu.Lock()
	lowered := t.count > 0
	t.count = 0
	t.mu.Unlock()

	if lowered && t.onChange != nil {
		t.onChange(false)
	}
}

// Busy reports whether any request is outstanding.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count > 0
}

// Count returns the number of outstanding requests.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
