package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagernet/dam/internal/logtest"
	"github.com/sagernet/dam/logging"
	"github.com/sagernet/dam/logictime"
	"github.com/sagernet/dam/simcontext"
)

func attach[T any](s *Sender[T], r *Receiver[T], senderView, receiverView logictime.View) {
	s.AttachSender(simcontext.NewStatic(senderView))
	r.AttachReceiver(simcontext.NewStatic(receiverView))
}

// S1 — simple send/recv at a fixed clock, shared counter round-trips.
func TestSimpleSendRecv(t *testing.T) {
	s, r := Bounded[string](2)
	senderView := logictime.NewMockView(logictime.New(5))
	receiverView := logictime.NewMockView(logictime.New(5))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(5), "a")))
	assert.Equal(t, uint64(1), s.viewStruct.currentSendReceiveDelta.Load())

	res := r.Recv()
	elem, ok := res.IsSomething()
	require.True(t, ok)
	assert.Equal(t, "a", elem.Data)
	assert.Equal(t, uint64(0), s.viewStruct.currentSendReceiveDelta.Load())

	require.NoError(t, s.Send(NewElement(logictime.New(5), "b")))
}

// S2 — backpressure: a full sender's first drain of the response stream
// finds nothing; once the receiver (meanwhile) consumes and acks past
// the sender's own send time, a second drain resolves to AvailableAt.
// Driven directly at the update_srd level (rather than via a real
// background goroutine parked in WaitUntil) to pin down the exact
// two-drain sequence the scenario describes without timing dependence.
func TestBackpressureWithFutureAck(t *testing.T) {
	s, r := Bounded[int](1)
	senderView := logictime.NewMockView(logictime.New(10))
	receiverView := logictime.NewMockView(logictime.New(9))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(10), 1)))

	s.updateSRD()
	assert.True(t, s.nextAvailable.IsUnknown(), "no ack is available yet")
	assert.Equal(t, uint64(1), s.sendReceiveDelta)

	receiverView.Advance(logictime.New(12))
	res := r.Recv()
	_, ok := res.IsSomething()
	require.True(t, ok)

	s.updateSRD()
	avail, ok := s.nextAvailable.AvailableTime()
	require.True(t, ok)
	assert.Equal(t, logictime.New(12), avail)

	err := s.Send(NewElement(logictime.New(10), 2))
	require.Error(t, err)
	rej, ok := err.(*SendRejected)
	require.True(t, ok)
	gotAvail, ok := rej.Options.AvailableTime()
	require.True(t, ok)
	assert.Equal(t, logictime.New(12), gotAvail)
}

// S3 — a closed receiver permanently stalls the sender with Never.
func TestReceiverCloseShutsDownSender(t *testing.T) {
	s, r := Bounded[int](1)
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(0), 1)))
	r.Close()

	err := s.Send(NewElement(logictime.New(0), 2))
	require.Error(t, err)
	rej, ok := err.(*SendRejected)
	require.True(t, ok)
	assert.True(t, rej.Options.IsNever())
}

// S4 — sender close drains the receiver in order, then reports Closed.
func TestSenderCloseDrainsReceiver(t *testing.T) {
	s, r := UnboundedChannel[string](DefaultOptions)
	senderView := logictime.NewMockView(logictime.New(1))
	receiverView := logictime.NewMockView(logictime.New(1))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(1), "a")))
	require.NoError(t, s.Send(NewElement(logictime.New(2), "b")))
	s.Close()

	elem, ok := r.Peek().IsSomething()
	require.True(t, ok)
	assert.Equal(t, "a", elem.Data)
	r.Recv()

	elem, ok = r.Peek().IsSomething()
	require.True(t, ok)
	assert.Equal(t, "b", elem.Data)
	r.Recv()

	assert.True(t, r.Peek().IsClosed())
}

// S5 — an empty channel's peek promises "nothing before sender TLB", and
// repeating the peek without a clock change does not block again.
func TestPeekTimePromise(t *testing.T) {
	s, r := Bounded[int](1)
	senderView := logictime.NewMockView(logictime.New(9))
	receiverView := logictime.NewMockView(logictime.New(7))
	attach(s, r, senderView, receiverView)

	nothingAt, ok := r.Peek().IsNothing()
	require.True(t, ok)
	assert.Equal(t, logictime.New(9), nothingAt)

	nothingAt, ok = r.Peek().IsNothing()
	require.True(t, ok)
	assert.Equal(t, logictime.New(9), nothingAt)
}

// S6 — a void sender never blocks and never touches the shared counter
// or emits a Len event.
func TestVoidSenderIdempotence(t *testing.T) {
	rec := logtest.NewRecorder()
	logging.Register(rec)
	defer logging.Register(nil)

	v := Void[int](DefaultOptions)
	v.AttachSender(simcontext.NewStatic(logictime.NewMockView(logictime.New(0))))

	for i := 0; i < 10000; i++ {
		require.NoError(t, v.Send(NewElement(logictime.New(0), i)))
	}
	assert.Equal(t, uint64(0), v.viewStruct.currentSendReceiveDelta.Load())

	for _, e := range rec.Entries() {
		assert.NotEqual(t, KindLen, e.Kind)
	}
}

// FIFO: the sequence observed at the receiver matches send order.
func TestFIFOOrdering(t *testing.T) {
	s, r := UnboundedChannel[int](DefaultOptions)
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	for i := 0; i < 50; i++ {
		require.NoError(t, s.Send(NewElement(logictime.New(0), i)))
	}

	for i := 0; i < 50; i++ {
		elem, ok := r.Recv().IsSomething()
		require.True(t, ok)
		assert.Equal(t, i, elem.Data)
	}
}

// Capacity: the shared counter never exceeds a bounded channel's capacity.
func TestCapacityNeverExceeded(t *testing.T) {
	const capacity = 4
	s, r := Bounded[int](capacity)
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	for i := 0; i < capacity; i++ {
		require.NoError(t, s.Send(NewElement(logictime.New(0), i)))
		assert.LessOrEqual(t, s.viewStruct.currentSendReceiveDelta.Load(), uint64(capacity))
	}

	err := s.Send(NewElement(logictime.New(0), capacity))
	require.Error(t, err)
}

// Counter coupling: after a quiescent send/recv sequence, the shared
// counter equals enqueued minus consumed.
func TestCounterCoupling(t *testing.T) {
	s, r := UnboundedChannel[int](DefaultOptions)
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Send(NewElement(logictime.New(0), i)))
	}
	for i := 0; i < 2; i++ {
		r.Recv()
	}
	assert.Equal(t, uint64(3), s.viewStruct.currentSendReceiveDelta.Load())
}

// Ack causality: every ack the sender would observe equals
// max(receiver TLB at recv, element time).
func TestAckCausality(t *testing.T) {
	s, r := Bounded[int](1)
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(0), 1)))
	receiverView.Advance(logictime.New(3))
	r.Recv()

	ack, ok := s.resp.recv()
	require.True(t, ok)
	assert.Equal(t, logictime.New(3), ack)
}

// Close-convergence: after sender close, the receiver observes Closed
// within finitely many peeks once the backlog is drained.
func TestCloseConvergence(t *testing.T) {
	s, r := UnboundedChannel[int](DefaultOptions)
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(0), 1)))
	s.Close()

	r.Recv()
	assert.True(t, r.Peek().IsClosed())
}

// DisableEvents mutes all four event kinds for a channel constructed
// with that option set.
func TestOptionsDisableEvents(t *testing.T) {
	rec := logtest.NewRecorder()
	logging.Register(rec)
	defer logging.Register(nil)

	s, r := BoundedWithFlavor[int](1, FlavorUnknown, Options{DisableEvents: true})
	senderView := logictime.NewMockView(logictime.New(0))
	receiverView := logictime.NewMockView(logictime.New(0))
	attach(s, r, senderView, receiverView)

	require.NoError(t, s.Send(NewElement(logictime.New(0), 1)))
	r.Recv()

	assert.Empty(t, rec.Entries())
}
