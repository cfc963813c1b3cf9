// Package track keeps the in-flight request registry that guarantees at
// most one outstanding call per logical operation type. Starting a new
// operation of a type cancels the prior one synchronously, before the new
// call is issued, so a superseded response is never observed
package track

import "sync"

// Aborter cancels an in-flight request by its identifier.
// The REST client implements it; a canceled call must resolve as the
// canceled sentinel, not as a failure
type Aborter interface {
	Cancel(requestID string)
}

// Tracker maps operation types to their single in-flight request id.
// Each store owns a private instance
type Tracker struct {
	mu      sync.Mutex
	active  map[string]string // opType -> requestID
	aborter Aborter
}

// New returns a Tracker that aborts through a. a may be nil in tests that
// only exercise the registry bookkeeping
func New(a Aborter) *Tracker {
	return &Tracker{active: make(map[string]string), aborter: a}
}

// Track registers requestID for opType, overwriting any prior mapping.
// The caller must have already canceled the prior request (CancelIfActive)
func (t *Tracker) Track(opType, requestID string) {
	t.mu.Lock()
	t.active[opType] = requestID
	t.mu.Unlock()
}

// CancelIfActive aborts and clears the registered request for opType.
// Idempotent no-op when nothing is in flight
func (t *Tracker) CancelIfActive(opType string) {
	t.mu.Lock()
	id, ok := t.active[opType]
	if ok {
		delete(t.active, opType)
	}
	t.mu.Unlock()
	if ok && t.aborter != nil {
		t.aborter.Cancel(id)
	}
}

// Untrack unconditionally clears the mapping for opType on terminal state
func (t *Tracker) Untrack(opType string) {
	t.mu.Lock()
	delete(t.active, opType)
	t.mu.Unlock()
}

// Current returns the request id registered for opType, when any.
// A resumed operation compares its own id against this to detect that it
// has been superseded while suspended
func (t *Tracker) Current(opType string) (string, bool) {
	t.mu.Lock()
	id, ok := t.active[opType]
	t.mu.Unlock()
	return id, ok
}

// CancelAll cancels and clears every registration (teardown or reset)
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	ids := make([]string, 0, len(t.active))
	for _, id := range t.active {
		ids = append(ids, id)
	}
	t.active = make(map[string]string)
	t.mu.Unlock()
	if t.aborter == nil {
		return
	}
	for _, id := range ids {
		t.aborter.Cancel(id)
	}
}
