package dom

// Event is passed to listeners during Dispatch.
type Event struct {
	Type   string
	Target *Element

	defaultPrevented bool
}

// PreventDefault cancels the element's default action (e.g. following a link).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener is an event callback with a stable identity, so it can be
// removed later by pointer.
type Listener struct {
	handle func(*Event)
}

// NewListener wraps fn.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{handle: fn}
}
