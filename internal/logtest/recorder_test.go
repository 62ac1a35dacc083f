package logtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagernet/dam/logging"
)

func TestRecorderCollectsInOrder(t *testing.T) {
	r := NewRecorder()
	r.Emit(logging.Entry{Kind: "send", ChannelID: 1})
	r.Emit(logging.Entry{Kind: "recv", ChannelID: 1})

	entries := r.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "send", entries[0].Kind)
	assert.Equal(t, "recv", entries[1].Kind)
}

func TestRecorderEntriesIsASnapshot(t *testing.T) {
	r := NewRecorder()
	r.Emit(logging.Entry{Kind: "send"})

	snap := r.Entries()
	r.Emit(logging.Entry{Kind: "recv"})

	assert.Len(t, snap, 1, "earlier snapshot must not observe later emits")
	assert.Len(t, r.Entries(), 2)
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder()
	r.Emit(logging.Entry{Kind: "send"})
	r.Reset()

	assert.Empty(t, r.Entries())
}
