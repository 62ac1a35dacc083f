// Package logging provides the process-wide event sink the channel core
// emits SendEvent/ReceiverEvent records to, plus a batching document-store
// shipper grounded on original_source's mongo_logger.rs.
package logging

import "time"

// Entry is the envelope every emitted event is wrapped in before reaching
// a Producer. Bson-tagged so MongoSink can insert it directly.
type Entry struct {
	Source    string    `bson:"source"`
	Kind      string    `bson:"kind"`
	ChannelID uint64    `bson:"channel_id"`
	Value     uint64    `bson:"value,omitempty"`
	HasValue  bool      `bson:"has_value"`
	Stamp     time.Time `bson:"stamp"`
}
