package channel

import (
	"fmt"

	"github.com/sagernet/dam/logictime"
	"github.com/sagernet/dam/simcontext"
)

type receiverState int

const (
	receiverOpen receiverState = iota
	receiverClosed
)

// Receiver is the consumer-side endpoint of a channel. Like Sender, it is
// single-owner: exactly one goroutine calls its methods.
type Receiver[T any] struct {
	state receiverState
	data  stream[Element[T]]

	resp stream[logictime.Time]

	viewStruct *viewStruct
	head       Recv[T]
}

// AttachReceiver records the receiver's TimeView. Must precede first use.
func (r *Receiver[T]) AttachReceiver(ctx simcontext.Context) {
	r.viewStruct.attachReceiver(ctx.View())
}

// ID returns the channel identity shared with this Receiver's Sender.
func (r *Receiver[T]) ID() ID { return r.viewStruct.channelID }

// Flavor returns the channel's metadata tag.
func (r *Receiver[T]) Flavor() Flavor { return r.viewStruct.flavor }

func (r *Receiver[T]) receiverTLB() logictime.Time {
	return r.viewStruct.receiverView().TickLowerBound()
}

func (r *Receiver[T]) underRecvClosed() bool {
	return r.state == receiverClosed
}

// tryUpdateHead rewrites the head from a single non-blocking stream read.
// It returns true whenever a terminal state (Something/Closed) was
// reached.
func (r *Receiver[T]) tryUpdateHead(nothingTime logictime.Time) bool {
	if r.underRecvClosed() {
		panic(fmt.Sprintf("channel %d: attempting to read from a closed channel", r.viewStruct.channelID))
	}
	elem, ok, wouldBlock := r.data.tryRecv()
	if !wouldBlock {
		if !ok {
			r.head = RecvClosed[T]()
			return true
		}
		r.head = RecvSomething(elem)
		return true
	}
	if nothingTime.IsInfinite() {
		r.head = RecvClosed[T]()
		return true
	}
	r.head = RecvNothing[T](nothingTime)
	return false
}

// PeekNextSync is a blocking peek that does not consult TLBs — for
// contexts that want to observe without advancing simulated time.
func (r *Receiver[T]) PeekNextSync() Recv[T] {
	switch {
	case r.head.kind == recvSomething:
		return r.head
	case r.head.kind == recvClosed:
		return r.head
	}

	if r.underRecvClosed() {
		panic(fmt.Sprintf("channel %d: attempting to read from a closed channel", r.viewStruct.channelID))
	}
	elem, ok := r.data.recv()
	if !ok {
		r.head = RecvClosed[T]()
	} else {
		r.head = RecvSomething(elem)
	}
	return r.head
}

// Peek is the non-destructive, clock-aware inspection operation.
func (r *Receiver[T]) Peek() Recv[T] {
	logPeek(r.viewStruct)
	recvTime := r.receiverTLB()

	switch r.head.kind {
	case recvNothing:
		if r.head.nothing >= recvTime {
			return r.head
		}
	case recvSomething, recvClosed:
		return r.head
	}

	if r.tryUpdateHead(logictime.New(0)) {
		return r.head
	}

	sigTime := r.viewStruct.senderView().WaitUntil(recvTime)
	if sigTime < recvTime {
		panic(fmt.Sprintf("channel %d: wait_until returned %d < argument %d", r.viewStruct.channelID, sigTime, recvTime))
	}
	r.tryUpdateHead(sigTime)
	return r.head
}

// Recv is the destructive read: on Something, it acknowledges the sender
// and returns the element.
func (r *Receiver[T]) Recv() Recv[T] {
	res := r.Peek()
	logRecv(r.viewStruct)

	switch res.kind {
	case recvSomething:
		ct := r.receiverTLB()
		prev := r.viewStruct.currentSendReceiveDelta.Dec() + 1
		if prev == 0 {
			panic(fmt.Sprintf("channel %d: recv found current_send_receive_delta already zero", r.viewStruct.channelID))
		}
		ack := ct.Max(res.element.Time)
		r.resp.sendOrAbandon(ack, r.viewStruct.senderGone)
		r.head = RecvUnknown[T]()
	case recvNothing, recvClosed:
		// leave state unchanged
	case recvUnknown:
		panic(fmt.Sprintf("channel %d: recv observed Unknown from peek", r.viewStruct.channelID))
	}
	return res
}

// Close drops the underlying handle. Further reads panic.
func (r *Receiver[T]) Close() {
	if r.state == receiverOpen {
		r.resp.closeStream()
	}
	r.state = receiverClosed
}

// Cleanup is an alias for Close.
func (r *Receiver[T]) Cleanup() {
	r.Close()
}
