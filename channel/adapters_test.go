package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagernet/dam/logictime"
	"github.com/sagernet/dam/simcontext"
)

func TestConvertingReceiverDequeueConverts(t *testing.T) {
	s, r := UnboundedChannel[int](DefaultOptions)
	attach(s, r, logictime.NewMockView(logictime.New(0)), logictime.NewMockView(logictime.New(0)))

	require.NoError(t, s.Send(NewElement(logictime.New(0), 41)))

	adapter := NewConvertingReceiver(r, func(v int) string { return string(rune('A' + v)) })
	elem, err := adapter.Dequeue(&simcontext.TimeManager{Name: "downstream"})
	require.NoError(t, err)
	assert.Equal(t, string(rune('A'+41)), elem.Data)
}

func TestConvertingReceiverDequeueOnClosedErrors(t *testing.T) {
	s, r := UnboundedChannel[int](DefaultOptions)
	attach(s, r, logictime.NewMockView(logictime.New(0)), logictime.NewMockView(logictime.New(0)))
	s.Close()

	adapter := NewConvertingReceiver(r, func(v int) int { return v })
	_, err := adapter.Dequeue(&simcontext.TimeManager{})
	assert.Equal(t, DequeueError{}, err)
}

func TestConvertingSenderEnqueueConverts(t *testing.T) {
	s, r := Bounded[int](1)
	attach(s, r, logictime.NewMockView(logictime.New(0)), logictime.NewMockView(logictime.New(0)))

	adapter := NewConvertingSender(s, func(v string) int { return len(v) })
	require.NoError(t, adapter.Enqueue(&simcontext.TimeManager{}, NewElement(logictime.New(0), "abc")))

	elem, ok := r.Recv().IsSomething()
	require.True(t, ok)
	assert.Equal(t, 3, elem.Data)
}

func TestConvertingSenderWaitUntilAvailableNeverErrors(t *testing.T) {
	s := Void[int](DefaultOptions)
	s.AttachSender(simcontext.NewStatic(logictime.NewMockView(logictime.New(0))))

	adapter := NewConvertingSender(s, func(v int) int { return v })
	assert.NoError(t, adapter.WaitUntilAvailable(&simcontext.TimeManager{}))
}
