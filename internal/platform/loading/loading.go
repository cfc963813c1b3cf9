// Package loading provides the debounced loading-state publisher.
// The published signal turns true only when an operation outlasts a fixed
// delay, so fast responses never flicker a spinner; turning it off is
// always immediate
package loading

import (
	"sync"
	"time"
)

// DefaultDelay is the debounce window before true is published
const DefaultDelay = 300 * time.Millisecond

// Publisher debounces a boolean loading signal.
// Consumers subscribe explicitly via the publish callback or poll Loading()
type Publisher struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	loading bool
	publish func(bool)
}

// New returns a Publisher with the given delay; delay <= 0 uses DefaultDelay.
// publish may be nil when only polling is wanted
func New(delay time.Duration, publish func(bool)) *Publisher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Publisher{delay: delay, publish: publish}
}

// Set transitions the desired loading state.
//
// Set(true) arms the debounce timer; the signal becomes true only if the
// timer fires without an intervening Set(false). Set(false) stops any
// pending timer and publishes false immediately, regardless of prior state.
// The signal can never become true after a more recent Set(false)
func (p *Publisher) Set(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !on {
		p.stopTimer()
		p.loading = false
		p.emit(false)
		return
	}
	if p.loading || p.timer != nil {
		return
	}
	p.timer = time.AfterFunc(p.delay, p.fire)
}

// fire runs on the timer goroutine when the debounce window elapses
func (p *Publisher) fire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer == nil {
		// canceled between firing and acquiring the lock
		return
	}
	p.timer = nil
	p.loading = true
	p.emit(true)
}

// Loading reports the currently published state
func (p *Publisher) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Cleanup stops any pending timer without changing the published value.
// Safe to call repeatedly during teardown
func (p *Publisher) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimer()
}

func (p *Publisher) stopTimer() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// emit publishes while holding mu; callbacks must not call back into p
func (p *Publisher) emit(v bool) {
	if p.publish != nil {
		p.publish(v)
	}
}
