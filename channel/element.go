package channel

import "github.com/sagernet/dam/logictime"

// Element pairs a data value with the logical time it was stamped at.
// Once placed in a channel its time is never less than the sender's TLB
// at the moment of send.
type Element[T any] struct {
	Time logictime.Time
	Data T
}

// NewElement constructs an Element.
func NewElement[T any](t logictime.Time, data T) Element[T] {
	return Element[T]{Time: t, Data: data}
}

// UpdateTime monotonically raises the element's stamp.
func (e *Element[T]) UpdateTime(t logictime.Time) {
	e.Time = e.Time.Max(t)
}
