package simcontext

import "github.com/sagernet/dam/logictime"

// Static wraps a fixed TimeView as a Context — the minimal collaborator
// a channel endpoint needs to attach to, useful for tests and for actors
// whose view never changes identity after construction.
type Static struct {
	view logictime.View
}

// NewStatic wraps view as a Context.
func NewStatic(view logictime.View) Static {
	return Static{view: view}
}

// View implements Context.
func (s Static) View() logictime.View { return s.view }
