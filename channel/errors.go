package channel

// DequeueError is returned by the adapter surface when a read targets a
// simulation-closed channel. ConvertingReceiver also returns it when a
// peek reports Nothing on a channel that is still open.
type DequeueError struct{}

func (DequeueError) Error() string {
	return "attempted to dequeue from simulation-closed channel"
}

// EnqueueError is returned by the adapter surface when a write targets a
// simulation-closed channel.
type EnqueueError struct{}

func (EnqueueError) Error() string {
	return "attempted to enqueue to a simulation-closed channel"
}
