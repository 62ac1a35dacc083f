package channel

// Options tunes the ambient behavior of a channel pair, mirroring the
// teacher's Config-to-constructor shape. The zero value is the default:
// log events enabled, response stream capacity matching the data stream.
type Options struct {
	// DisableEvents suppresses Send/Len/Peek/Recv log event emission for
	// this channel, for callers that construct channels in bulk and
	// don't want the logging package's registered Producer flooded.
	DisableEvents bool

	// ResponseCapacity overrides the response stream's buffer size for a
	// Bounded/BoundedWithFlavor channel. Zero means "use the data
	// stream's own capacity". Ignored by UnboundedChannel and Void,
	// whose response streams are never capacity-bounded.
	ResponseCapacity uint64
}

// DefaultOptions is the zero-value Options: events on, symmetric capacity.
var DefaultOptions = Options{}

func (o Options) responseCapacity(dataCapacity uint64) uint64 {
	if o.ResponseCapacity == 0 {
		return dataCapacity
	}
	return o.ResponseCapacity
}
