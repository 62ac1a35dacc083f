package channel

import "go.uber.org/atomic"

// idCounter is the process-wide monotone ChannelID allocator, the Go
// stand-in for the teacher's own monotonic write-request sequence number
// (atomic.AddUint32(&s.requestID, 1)).
var idCounter atomic.Uint64

// ID is a process-wide unique channel identifier.
type ID uint64

func nextID() ID {
	return ID(idCounter.Inc() - 1)
}

// Flavor is an optional metadata tag describing a channel's role in the
// surrounding simulator's dataflow graph. The core never interprets it —
// it is preserved and queryable only.
type Flavor int

const (
	FlavorUnknown Flavor = iota
	FlavorAcyclic
	FlavorCyclic
)

func (f Flavor) String() string {
	switch f {
	case FlavorAcyclic:
		return "acyclic"
	case FlavorCyclic:
		return "cyclic"
	default:
		return "unknown"
	}
}
