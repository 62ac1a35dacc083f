package channel

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sagernet/dam/logictime"
	"github.com/sagernet/dam/simcontext"
)

type senderState int

const (
	senderOpen senderState = iota
	senderClosed
	senderVoid
)

// SendRejected is returned by Sender.Send when the channel is full. It
// carries the capacity oracle the caller should act on: retry, advance
// simulated time, or abort.
type SendRejected struct {
	Options SendOptions
}

func (e *SendRejected) Error() string {
	return fmt.Sprintf("send rejected, next available: %s", e.Options)
}

// Sender is the producer-side endpoint of a channel. Exactly one
// goroutine — the owning actor's — ever calls methods on a given Sender;
// it is not safe for concurrent use by multiple goroutines (spec's
// single-owner model), the only shared state being the viewStruct
// (an atomic counter plus an RWMutex-guarded view pair) and the
// underlying streams (Go channels, or a mutex-guarded queue for
// unbounded channels).
type Sender[T any] struct {
	state senderState
	data  stream[Element[T]]

	resp stream[logictime.Time]

	sendReceiveDelta uint64
	capacity         uint64

	viewStruct *viewStruct

	nextAvailable SendOptions
}

// AttachSender records the sender's TimeView. Must be called before the
// first Send, and at most once per channel.
func (s *Sender[T]) AttachSender(ctx simcontext.Context) {
	s.viewStruct.attachSender(ctx.View())
}

// ID returns the channel identity shared with this Sender's Receiver.
func (s *Sender[T]) ID() ID { return s.viewStruct.channelID }

// Flavor returns the channel's metadata tag.
func (s *Sender[T]) Flavor() Flavor { return s.viewStruct.flavor }

func (s *Sender[T]) senderTLB() logictime.Time {
	return s.viewStruct.senderView().TickLowerBound()
}

// Send attempts a non-blocking enqueue. On success it increments both the
// shared atomic and the local delta, enqueues the element, and emits a
// Send log event. On failure (is_full) it returns a *SendRejected
// carrying the capacity oracle, without enqueuing.
func (s *Sender[T]) Send(elem Element[T]) error {
	if s.isFull() {
		return &SendRejected{Options: s.nextAvailable}
	}

	if elem.Time < s.senderTLB() {
		panic(fmt.Sprintf("channel %d: element time %d below sender TLB %d", s.viewStruct.channelID, elem.Time, s.senderTLB()))
	}

	// Void never touches send_receive_delta — neither the local count nor
	// the shared atomic — since there is no receiver to ever drain it.
	if s.state == senderVoid {
		s.underSend(elem)
		logSend(s.viewStruct)
		return nil
	}

	if s.sendReceiveDelta >= s.capacity {
		panic(fmt.Sprintf("channel %d: send with send_receive_delta >= capacity", s.viewStruct.channelID))
	}

	prev := s.viewStruct.currentSendReceiveDelta.Inc() - 1
	if prev >= s.capacity {
		panic(fmt.Sprintf("channel %d: shared counter observed %d >= capacity %d on send", s.viewStruct.channelID, prev, s.capacity))
	}

	s.underSend(elem)
	s.sendReceiveDelta++

	logSend(s.viewStruct)
	return nil
}

func (s *Sender[T]) underSend(elem Element[T]) {
	switch s.state {
	case senderVoid:
		return
	case senderClosed:
		panic(fmt.Sprintf("channel %d: send on closed sender", s.viewStruct.channelID))
	default:
		if !s.data.trySend(elem) {
			panic(fmt.Sprintf("channel %d: data stream unexpectedly full", s.viewStruct.channelID))
		}
	}
}

// isFull is the fullness oracle: Void never blocks, a sender under local
// capacity is trivially not full, otherwise update_len is given a chance
// to reclaim capacity before reporting the verdict.
func (s *Sender[T]) isFull() bool {
	if s.state == senderVoid {
		return false
	}
	if s.sendReceiveDelta < s.capacity {
		return false
	}
	s.updateLen()
	logLen(s.viewStruct, s.sendReceiveDelta)
	return s.sendReceiveDelta == s.capacity
}

// updateLen refreshes next_available, then tries to reclaim capacity.
func (s *Sender[T]) updateLen() {
	sendTime := s.senderTLB()

	if t, ok := s.nextAvailable.AvailableAtTime(); ok {
		if t <= sendTime {
			s.nextAvailable = UnknownOptions
			if s.sendReceiveDelta == 0 {
				panic(fmt.Sprintf("channel %d: update_len decrementing zero delta", s.viewStruct.channelID))
			}
			s.sendReceiveDelta--
		} else {
			return
		}
	}

	s.updateSRD()
	if s.sendReceiveDelta < s.capacity {
		return
	}

	newTime := s.viewStruct.receiverView().WaitUntil(sendTime)
	if newTime < sendTime {
		panic(fmt.Sprintf("channel %d: wait_until returned %d < argument %d", s.viewStruct.channelID, newTime, sendTime))
	}

	s.updateSRD()
	if s.nextAvailable.IsUnknown() {
		s.nextAvailable = CheckBackAt(newTime.Incr())
	}
}

// updateSRD drains the response stream as far as possible: one blocking
// receive if the local delta is known to be stale relative to the shared
// atomic, then a non-blocking drain loop.
func (s *Sender[T]) updateSRD() {
	sendTime := s.senderTLB()
	s.nextAvailable = UnknownOptions

	real := s.viewStruct.currentSendReceiveDelta.Load()
	if real > s.sendReceiveDelta {
		logrus.WithFields(logrus.Fields{
			"channel": s.viewStruct.channelID,
			"real":    real,
			"local":   s.sendReceiveDelta,
		}).Warn("shared send/receive delta exceeds local delta")
	}
	if real > s.sendReceiveDelta {
		panic(fmt.Sprintf("channel %d: shared delta %d > local delta %d", s.viewStruct.channelID, real, s.sendReceiveDelta))
	}
	srdDiff := s.sendReceiveDelta - real

	if srdDiff > 0 {
		t, ok := s.resp.recv()
		if !ok {
			s.nextAvailable = NeverOptions
			return
		}
		if t <= sendTime {
			if s.sendReceiveDelta == 0 {
				panic(fmt.Sprintf("channel %d: update_srd decrementing zero delta", s.viewStruct.channelID))
			}
			s.sendReceiveDelta--
		} else {
			s.nextAvailable = AvailableAt(t)
			return
		}
	}

	for {
		t, ok, wouldBlock := s.resp.tryRecv()
		if wouldBlock {
			return
		}
		if !ok {
			s.nextAvailable = NeverOptions
			return
		}
		if t <= sendTime {
			if s.sendReceiveDelta == 0 {
				panic(fmt.Sprintf("channel %d: update_srd decrementing zero delta", s.viewStruct.channelID))
			}
			s.sendReceiveDelta--
		} else {
			s.nextAvailable = AvailableAt(t)
			return
		}
	}
}

// Close drops the underlying stream. Subsequent sends on a Closed sender
// panic, signaled by the stream layer.
func (s *Sender[T]) Close() {
	if s.state == senderOpen {
		s.data.closeStream()
		close(s.viewStruct.senderGone)
	}
	s.state = senderClosed
}

// Cleanup is an alias for Close, for callers that invoke it when the
// sender goes out of scope.
func (s *Sender[T]) Cleanup() {
	s.Close()
}
