// Package simcontext holds the thin collaborator contracts the channel
// core depends on but never implements: a simulation actor's view
// capability and an opaque TimeManager identity parameter. Both are
// out of scope per spec.md section 1 — the core only calls .View() on a
// Context, and threads a *TimeManager through adapter calls without
// interpreting it.
package simcontext

import "github.com/sagernet/dam/logictime"

// Context is any simulation actor. The channel core's only use of it is
// obtaining a TimeView handle via View.
type Context interface {
	View() logictime.View
}
