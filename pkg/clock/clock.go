// Package clock supplies the current time in unix milliseconds. Every place
// that computes expiry takes a Clock so the logic stays deterministic under
// test.
package clock

import (
	"sync"
	"time"
)

// Clock is the source of current time.
type Clock interface {
	NowMillis() int64
}

// System reads the wall clock.
type System struct{}

func NewSystem() System { return System{} }

func (System) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// Fixed is a manually advanced clock for tests. Safe for concurrent use.
type Fixed struct {
	mu  sync.Mutex
	now int64
}

// NewFixed creates a fixed clock pinned at the given millisecond instant.
func NewFixed(now int64) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) NowMillis() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by delta milliseconds.
func (f *Fixed) Advance(delta int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += delta
}

// Set pins the clock at a new instant.
func (f *Fixed) Set(now int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}
