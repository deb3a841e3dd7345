// Package viewport watches the card rendered last and reports when it
// scrolls into the visible window.
package viewport

// Observer tracks visibility of a single target card
type Observer struct {
	target  string
	visible bool
}

// New creates an observer with no target
func New() *Observer {
	return &Observer{}
}

// Observe starts watching id. Observing a different id releases the previous
// target; observing the same id again keeps its visibility state.
func (o *Observer) Observe(id string) {
	if id == o.target {
		return
	}
	o.Disconnect()
	o.target = id
}

// Disconnect stops watching the current target
func (o *Observer) Disconnect() {
	o.target = ""
	o.visible = false
}

// Target returns the id being watched, or "" when none
func (o *Observer) Target() string {
	return o.target
}

// Check reports whether the target has just entered the visible window.
// It fires once per transition: a target that stays visible does not fire
// again until it has left the window.
func (o *Observer) Check(isVisible func(id string) bool) bool {
	if o.target == "" {
		return false
	}
	now := isVisible(o.target)
	entered := now && !o.visible
	o.visible = now
	return entered
}
