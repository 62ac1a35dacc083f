package channel

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/sagernet/dam/logictime"
)

// viewStruct is the shared per-channel state referenced by exactly one
// sender and one receiver: identity, the two attached TimeViews, and the
// live in-flight counter. It holds no back-pointers to its endpoints, so
// there are no reference cycles — ordinary Go GC reclaims it once both
// endpoints drop their pointer.
type viewStruct struct {
	mu       sync.RWMutex
	sender   logictime.View
	receiver logictime.View

	channelID ID
	flavor    Flavor

	// eventsDisabled mutes Send/Len/Peek/Recv log event emission for this
	// channel, set at construction time via Options.
	eventsDisabled bool

	// currentSendReceiveDelta is the true, shared count of elements
	// currently in flight: incremented by the sender on successful send,
	// decremented by the receiver on successful recv.
	currentSendReceiveDelta atomic.Uint64

	// senderGone is closed exactly once, when the Sender endpoint
	// closes. The receiver's ack push selects on it so that a receiver
	// outliving its sender never blocks forever pushing an
	// acknowledgement nobody will read (spec.md section 4.3 step 3:
	// "ignore send failure: the sender endpoint may have dropped").
	senderGone chan struct{}
}

func newViewStruct(flavor Flavor, opts Options) *viewStruct {
	return &viewStruct{
		channelID:      nextID(),
		flavor:         flavor,
		eventsDisabled: opts.DisableEvents,
		senderGone:     make(chan struct{}),
	}
}

// attachSender records the sender's TimeView. Panics if called twice —
// attach order is a programmer contract, not a recoverable condition.
func (vs *viewStruct) attachSender(view logictime.View) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if vs.sender != nil {
		panic(fmt.Sprintf("channel %d: sender already attached", vs.channelID))
	}
	vs.sender = view
}

// attachReceiver records the receiver's TimeView. Panics if called twice.
func (vs *viewStruct) attachReceiver(view logictime.View) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if vs.receiver != nil {
		panic(fmt.Sprintf("channel %d: receiver already attached", vs.channelID))
	}
	vs.receiver = view
}

func (vs *viewStruct) senderView() logictime.View {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	if vs.sender == nil {
		panic(fmt.Sprintf("channel %d: sender view used before attach", vs.channelID))
	}
	return vs.sender
}

func (vs *viewStruct) receiverView() logictime.View {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	if vs.receiver == nil {
		panic(fmt.Sprintf("channel %d: receiver view used before attach", vs.channelID))
	}
	return vs.receiver
}

// SendOptions is the sender's capacity oracle, returned when a send is
// refused.
type SendOptions struct {
	kind        sendOptionsKind
	availableAt logictime.Time
}

type sendOptionsKind int

const (
	sendUnknown sendOptionsKind = iota
	sendAvailableAt
	sendCheckBackAt
	sendNever
)

// UnknownOptions is the "we don't yet know when capacity frees up" value.
var UnknownOptions = SendOptions{kind: sendUnknown}

// NeverOptions signals the receiver endpoint has dropped and no future
// send will ever succeed.
var NeverOptions = SendOptions{kind: sendNever}

// AvailableAt reports that capacity is known to free up at time t.
func AvailableAt(t logictime.Time) SendOptions {
	return SendOptions{kind: sendAvailableAt, availableAt: t}
}

// CheckBackAt reports that the caller should retry no earlier than t.
func CheckBackAt(t logictime.Time) SendOptions {
	return SendOptions{kind: sendCheckBackAt, availableAt: t}
}

// IsUnknown reports whether o carries no information yet.
func (o SendOptions) IsUnknown() bool { return o.kind == sendUnknown }

// IsNever reports whether o signals permanent unavailability.
func (o SendOptions) IsNever() bool { return o.kind == sendNever }

// AvailableTime returns the promised time and true if o is AvailableAt or
// CheckBackAt.
func (o SendOptions) AvailableTime() (logictime.Time, bool) {
	if o.kind == sendAvailableAt || o.kind == sendCheckBackAt {
		return o.availableAt, true
	}
	return 0, false
}

// AvailableAtTime returns the promised time and true only if o is
// specifically AvailableAt (not CheckBackAt).
func (o SendOptions) AvailableAtTime() (logictime.Time, bool) {
	if o.kind == sendAvailableAt {
		return o.availableAt, true
	}
	return 0, false
}

func (o SendOptions) String() string {
	switch o.kind {
	case sendAvailableAt:
		return fmt.Sprintf("AvailableAt(%d)", o.availableAt)
	case sendCheckBackAt:
		return fmt.Sprintf("CheckBackAt(%d)", o.availableAt)
	case sendNever:
		return "Never"
	default:
		return "Unknown"
	}
}

// Recv is the receiver's head cache: exactly one of Something, Nothing,
// Closed, or Unknown is populated, distinguished by the IsSomething,
// IsNothing, IsClosed and IsUnknown accessors.
type Recv[T any] struct {
	kind    recvKind
	element Element[T]
	nothing logictime.Time
}

type recvKind int

const (
	recvUnknown recvKind = iota
	recvSomething
	recvNothing
	recvClosed
)

// RecvSomething wraps a peeked-but-not-consumed element.
func RecvSomething[T any](e Element[T]) Recv[T] {
	return Recv[T]{kind: recvSomething, element: e}
}

// RecvNothing reports the channel observed empty, with no element
// arriving before t.
func RecvNothing[T any](t logictime.Time) Recv[T] {
	return Recv[T]{kind: recvNothing, nothing: t}
}

// RecvClosed reports the sender endpoint has been dropped.
func RecvClosed[T any]() Recv[T] {
	return Recv[T]{kind: recvClosed}
}

// RecvUnknown reports the cache is invalidated and must be refreshed.
func RecvUnknown[T any]() Recv[T] {
	return Recv[T]{kind: recvUnknown}
}

// IsSomething reports whether r holds an element, and returns it.
func (r Recv[T]) IsSomething() (Element[T], bool) {
	return r.element, r.kind == recvSomething
}

// IsNothing reports whether r is a timed "nothing" promise, returning the
// time it's valid until.
func (r Recv[T]) IsNothing() (logictime.Time, bool) {
	return r.nothing, r.kind == recvNothing
}

// IsClosed reports whether r signals the sender has gone away.
func (r Recv[T]) IsClosed() bool { return r.kind == recvClosed }

// IsUnknown reports whether r is an invalidated cache entry.
func (r Recv[T]) IsUnknown() bool { return r.kind == recvUnknown }
