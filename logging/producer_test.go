package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitDefaultsToDiscard(t *testing.T) {
	Register(nil)
	assert.NotPanics(t, func() {
		Emit(Entry{Source: "test", Kind: "send"})
	})
}

type captureProducer struct {
	got []Entry
}

func (c *captureProducer) Emit(e Entry) { c.got = append(c.got, e) }

func TestRegisterRoutesEmit(t *testing.T) {
	defer Register(nil)

	p := &captureProducer{}
	Register(p)
	Emit(Entry{Source: "sender", Kind: "send", ChannelID: 3})

	assert.Len(t, p.got, 1)
	assert.Equal(t, uint64(3), p.got[0].ChannelID)
}

func TestRegisterNilRestoresDiscard(t *testing.T) {
	p := &captureProducer{}
	Register(p)
	Register(nil)
	Emit(Entry{Source: "sender", Kind: "send"})

	assert.Empty(t, p.got)
}
