package channel

import "github.com/sagernet/dam/logictime"

// Unbounded is the capacity sentinel used by unbounded channels: the
// maximum representable count, so send_receive_delta < capacity always
// holds.
const Unbounded = ^uint64(0)

// Bounded constructs a paired Sender/Receiver with ChannelFlavor Unknown
// and the given finite capacity, using DefaultOptions.
func Bounded[T any](capacity uint64) (*Sender[T], *Receiver[T]) {
	return BoundedWithFlavor[T](capacity, FlavorUnknown, DefaultOptions)
}

// BoundedWithFlavor constructs a paired Sender/Receiver of the given
// capacity, tagged with a caller-supplied flavor. The response stream is
// allocated with the same capacity unless opts.ResponseCapacity overrides
// it.
func BoundedWithFlavor[T any](capacity uint64, flavor Flavor, opts Options) (*Sender[T], *Receiver[T]) {
	data := newChanStream[Element[T]](capacity)
	resp := newChanStream[logictime.Time](opts.responseCapacity(capacity))
	vs := newViewStruct(flavor, opts)

	snd := &Sender[T]{
		state:         senderOpen,
		data:          data,
		resp:          resp,
		capacity:      capacity,
		viewStruct:    vs,
		nextAvailable: UnknownOptions,
	}
	rcv := &Receiver[T]{
		state:      receiverOpen,
		data:       data,
		resp:       resp,
		viewStruct: vs,
		head:       RecvUnknown[T](),
	}
	return snd, rcv
}

// UnboundedChannel constructs a pair whose sender never reports is_full:
// both streams are growable queues with no capacity ceiling, and the
// sender's own bookkeeping capacity is Unbounded.
func UnboundedChannel[T any](opts Options) (*Sender[T], *Receiver[T]) {
	data := newQueueStream[Element[T]]()
	resp := newQueueStream[logictime.Time]()
	vs := newViewStruct(FlavorUnknown, opts)

	snd := &Sender[T]{
		state:         senderOpen,
		data:          data,
		resp:          resp,
		capacity:      Unbounded,
		viewStruct:    vs,
		nextAvailable: UnknownOptions,
	}
	rcv := &Receiver[T]{
		state:      receiverOpen,
		data:       data,
		resp:       resp,
		viewStruct: vs,
		head:       RecvUnknown[T](),
	}
	return snd, rcv
}

// Void constructs a lone Sender whose data is silently discarded and
// which never reports is_full. There is no paired Receiver — none is
// constructed, by design.
func Void[T any](opts Options) *Sender[T] {
	return &Sender[T]{
		state:         senderVoid,
		resp:          newNeverStream[logictime.Time](),
		capacity:      Unbounded,
		viewStruct:    newViewStruct(FlavorUnknown, opts),
		nextAvailable: UnknownOptions,
	}
}
