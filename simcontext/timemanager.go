package simcontext

// TimeManager is supplied to the adapter-level enqueue/dequeue operations
// and is opaque to the channel core except as an identity parameter —
// the core threads it through without interpreting it.
type TimeManager struct {
	// Name identifies the manager for logging/debugging purposes only.
	Name string
}
