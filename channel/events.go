package channel

import "github.com/sagernet/dam/logging"

// Event kind tags for SendEvent/ReceiverEvent, mirroring the original's
// two Rust enums as flat Go constants since Entry carries one Kind field
// rather than a tagged union.
const (
	KindSend = "send"
	KindLen  = "len"
	KindPeek = "peek"
	KindRecv = "recv"
)

func logSend(vs *viewStruct) {
	if vs.eventsDisabled {
		return
	}
	logging.Emit(logging.Entry{Source: "sender", Kind: KindSend, ChannelID: uint64(vs.channelID)})
}

func logLen(vs *viewStruct, currentLocalDelta uint64) {
	if vs.eventsDisabled {
		return
	}
	logging.Emit(logging.Entry{Source: "sender", Kind: KindLen, ChannelID: uint64(vs.channelID), Value: currentLocalDelta, HasValue: true})
}

func logPeek(vs *viewStruct) {
	if vs.eventsDisabled {
		return
	}
	logging.Emit(logging.Entry{Source: "receiver", Kind: KindPeek, ChannelID: uint64(vs.channelID)})
}

func logRecv(vs *viewStruct) {
	if vs.eventsDisabled {
		return
	}
	logging.Emit(logging.Entry{Source: "receiver", Kind: KindRecv, ChannelID: uint64(vs.channelID)})
}
