package logictime

import (
	"sync"

	"go.uber.org/atomic"
)

// View is the capability interface the channel core uses to query or wait
// on an actor's clock. It never inspects the actor itself — every
// cross-party clock interaction goes through these two methods.
type View interface {
	// TickLowerBound returns the current lower bound of this actor's
	// simulated time.
	TickLowerBound() Time

	// WaitUntil blocks the caller until this actor's TLB is >= t, and
	// returns the TLB value it reached (>= t, possibly TimeInfinite if
	// the actor has terminated).
	WaitUntil(t Time) Time
}

// MockView is a test double that lets a harness advance an actor's TLB on
// command and have any goroutine parked in WaitUntil wake immediately.
type MockView struct {
	mu  sync.Mutex
	cnd *sync.Cond
	tlb atomic.Int64
}

// NewMockView constructs a MockView with an initial tick lower bound.
func NewMockView(initial Time) *MockView {
	v := &MockView{}
	v.cnd = sync.NewCond(&v.mu)
	v.tlb.Store(int64(initial))
	return v
}

// TickLowerBound implements View.
func (v *MockView) TickLowerBound() Time {
	return Time(v.tlb.Load())
}

// Advance raises the mock actor's TLB and wakes any waiters. It is a
// no-op (besides the wake) if t is not later than the current TLB —
// TLBs are monotone non-decreasing by contract.
func (v *MockView) Advance(t Time) {
	v.mu.Lock()
	if t > Time(v.tlb.Load()) {
		v.tlb.Store(int64(t))
	}
	v.cnd.Broadcast()
	v.mu.Unlock()
}

// Terminate marks the mock actor as finished: its TLB becomes
// TimeInfinite and all current/future waiters unblock.
func (v *MockView) Terminate() {
	v.Advance(TimeInfinite)
}

// WaitUntil implements View.
func (v *MockView) WaitUntil(t Time) Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	for Time(v.tlb.Load()) < t {
		v.cnd.Wait()
	}
	return Time(v.tlb.Load())
}
