package channel

import "github.com/sagernet/dam/simcontext"

// RecvAdapter exposes Peek/PeekNext/Dequeue in terms of a converted
// element type U. It is the Go stand-in for the original's blanket
// Into<U> trait implementation: since Go has no bounded parametric
// conversion traits, the adapter instead carries the conversion function
// explicitly, per spec.md section 9's own suggested equivalence.
type RecvAdapter[U any] interface {
	Peek() Recv[U]
	PeekNext(manager *simcontext.TimeManager) (Element[U], error)
	Dequeue(manager *simcontext.TimeManager) (Element[U], error)
}

// ConvertingReceiver adapts a Receiver[T] into a RecvAdapter[U] via a
// conversion function. The conversion is assumed total and is invoked
// once per element crossing the boundary; time is preserved verbatim.
type ConvertingReceiver[T, U any] struct {
	Receiver *Receiver[T]
	Convert  func(T) U
}

// NewConvertingReceiver builds a ConvertingReceiver.
func NewConvertingReceiver[T, U any](r *Receiver[T], convert func(T) U) *ConvertingReceiver[T, U] {
	return &ConvertingReceiver[T, U]{Receiver: r, Convert: convert}
}

func (a *ConvertingReceiver[T, U]) convertRecv(r Recv[T]) Recv[U] {
	if elem, ok := r.IsSomething(); ok {
		return RecvSomething(Element[U]{Time: elem.Time, Data: a.Convert(elem.Data)})
	}
	if t, ok := r.IsNothing(); ok {
		return RecvNothing[U](t)
	}
	if r.IsClosed() {
		return RecvClosed[U]()
	}
	return RecvUnknown[U]()
}

// Peek implements RecvAdapter[U].
func (a *ConvertingReceiver[T, U]) Peek() Recv[U] {
	return a.convertRecv(a.Receiver.Peek())
}

// PeekNext implements RecvAdapter[U]: a non-destructive read that returns
// DequeueError instead of a Recv[U] whenever Peek does not yield an
// element — when the channel is simulation-closed, and also when Peek
// reports Nothing on an open, empty channel. It does not wait for an
// element to arrive.
func (a *ConvertingReceiver[T, U]) PeekNext(_ *simcontext.TimeManager) (Element[U], error) {
	r := a.convertRecv(a.Receiver.Peek())
	if elem, ok := r.IsSomething(); ok {
		return elem, nil
	}
	return Element[U]{}, DequeueError{}
}

// Dequeue implements RecvAdapter[U]: the destructive counterpart, with
// the same DequeueError cases as PeekNext (closed, or Nothing).
func (a *ConvertingReceiver[T, U]) Dequeue(_ *simcontext.TimeManager) (Element[U], error) {
	r := a.convertRecv(a.Receiver.Recv())
	if elem, ok := r.IsSomething(); ok {
		return elem, nil
	}
	return Element[U]{}, DequeueError{}
}

// SendAdapter exposes Enqueue/WaitUntilAvailable in terms of an inbound
// element type U.
type SendAdapter[U any] interface {
	Enqueue(manager *simcontext.TimeManager, data Element[U]) error
	WaitUntilAvailable(manager *simcontext.TimeManager) error
}

// ConvertingSender adapts a Sender[T] into a SendAdapter[U] via a
// conversion function constructing T from U.
type ConvertingSender[T, U any] struct {
	Sender  *Sender[T]
	Convert func(U) T
}

// NewConvertingSender builds a ConvertingSender.
func NewConvertingSender[T, U any](s *Sender[T], convert func(U) T) *ConvertingSender[T, U] {
	return &ConvertingSender[T, U]{Sender: s, Convert: convert}
}

// Enqueue implements SendAdapter[U]: converts data.Data via Convert,
// preserving the timestamp, and forwards to Sender.Send. A full channel
// is not itself an EnqueueError — callers distinguish that case by type-
// asserting *SendRejected if they need the capacity oracle; Enqueue
// surfaces a plain EnqueueError only when the rejection carries Never,
// i.e. the receiver endpoint has closed (a send attempted against a
// Closed sender panics at the core, matching spec.md's "signaled by the
// stream layer").
func (a *ConvertingSender[T, U]) Enqueue(_ *simcontext.TimeManager, data Element[U]) error {
	elem := Element[T]{Time: data.Time, Data: a.Convert(data.Data)}
	if err := a.Sender.Send(elem); err != nil {
		if rej, ok := err.(*SendRejected); ok && rej.Options.IsNever() {
			return EnqueueError{}
		}
		return err
	}
	return nil
}

// WaitUntilAvailable blocks (by repeatedly consulting the capacity
// oracle) until the sender is known not to be full, or reports
// EnqueueError if the channel is permanently unavailable.
func (a *ConvertingSender[T, U]) WaitUntilAvailable(_ *simcontext.TimeManager) error {
	for a.Sender.isFull() {
		if a.Sender.nextAvailable.IsNever() {
			return EnqueueError{}
		}
	}
	return nil
}
