// Package logtest provides an in-memory logging.Producer double for unit
// tests that want to assert on emitted events without pulling in Mongo.
package logtest

import (
	"sync"

	"github.com/sagernet/dam/logging"
)

// Recorder collects every Entry Emit is called with, in order.
type Recorder struct {
	mu      sync.Mutex
	entries []logging.Entry
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements logging.Producer.
func (r *Recorder) Emit(e logging.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Entries returns a snapshot of everything recorded so far.
func (r *Recorder) Entries() []logging.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]logging.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
