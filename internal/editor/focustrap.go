package editor

// FocusTrap confines keyboard tab-cycling to the interactive elements of
// one open modal container. Only the Tab key is ever intercepted:
// forward-tab on the last element wraps to the first, shift-tab on the
// first wraps to the last, and everything else falls through to the
// host. The trap goes inert once deactivated or once the container
// reports it is no longer visible.

// Focusable is a single interactive element inside a container.
type Focusable interface {
	Focus()
}

// Container is the modal-like region the trap is scoped to. Focusables
// must be returned in document order.
type Container interface {
	Focusables() []Focusable
	Active() Focusable
	Visible() bool
}

// Key is a keyboard event as seen by the trap.
type Key struct {
	Name  string
	Shift bool
}

const keyTab = "Tab"

type FocusTrap struct {
	container Container
	active    bool
}

func NewFocusTrap() *FocusTrap {
	return &FocusTrap{}
}

// Activate scopes the trap to container and moves focus to its first
// focusable element, if any.
func (t *FocusTrap) Activate(c Container) {
	t.container = c
	t.active = true
	if elems := c.Focusables(); len(elems) > 0 {
		elems[0].Focus()
	}
}

// Deactivate releases the trap; subsequent keys pass through.
func (t *FocusTrap) Deactivate() {
	t.active = false
	t.container = nil
}

func (t *FocusTrap) IsActive() bool {
	return t.active
}

// HandleKey applies the wrap rule. It returns true when the key was
// consumed (focus was moved by the trap) and false when the host's
// default behavior should run.
func (t *FocusTrap) HandleKey(k Key) bool {
	if !t.active || t.container == nil || !t.container.Visible() {
		return false
	}
	if k.Name != keyTab {
		return false
	}

	elems := t.container.Focusables()
	if len(elems) == 0 {
		return false
	}
	first, last := elems[0], elems[len(elems)-1]
	active := t.container.Active()

	if k.Shift {
		if active == first {
			last.Focus()
			return true
		}
		return false
	}
	if active == last {
		first.Focus()
		return true
	}
	return false
}
