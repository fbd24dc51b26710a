package editor

import "testing"

type fakeElement struct {
	name    string
	focused int
}

func (f *fakeElement) Focus() { f.focused++ }

type fakeContainer struct {
	elements []Focusable
	active   Focusable
	visible  bool
}

func (c *fakeContainer) Focusables() []Focusable { return c.elements }
func (c *fakeContainer) Active() Focusable       { return c.active }
func (c *fakeContainer) Visible() bool           { return c.visible }

func newFakeContainer(names ...string) (*fakeContainer, []*fakeElement) {
	elems := make([]*fakeElement, len(names))
	focusables := make([]Focusable, len(names))
	for i, n := range names {
		elems[i] = &fakeElement{name: n}
		focusables[i] = elems[i]
	}
	return &fakeContainer{elements: focusables, visible: true}, elems
}

func TestActivateFocusesFirstElement(t *testing.T) {
	c, elems := newFakeContainer("a", "b", "c")
	trap := NewFocusTrap()
	trap.Activate(c)

	if elems[0].focused != 1 {
		t.Errorf("first element focused %d times, want 1", elems[0].focused)
	}
	if !trap.IsActive() {
		t.Error("trap should be active")
	}
}

func TestTabWrapsFromLastToFirst(t *testing.T) {
	c, elems := newFakeContainer("a", "b", "c")
	trap := NewFocusTrap()
	trap.Activate(c)

	c.active = elems[2]
	if !trap.HandleKey(Key{Name: "Tab"}) {
		t.Fatal("Tab on last element must be consumed")
	}
	if elems[0].focused != 2 { // once at activate, once at wrap
		t.Errorf("first element focused %d times, want 2", elems[0].focused)
	}
}

func TestShiftTabWrapsFromFirstToLast(t *testing.T) {
	c, elems := newFakeContainer("a", "b", "c")
	trap := NewFocusTrap()
	trap.Activate(c)

	c.active = elems[0]
	if !trap.HandleKey(Key{Name: "Tab", Shift: true}) {
		t.Fatal("Shift+Tab on first element must be consumed")
	}
	if elems[2].focused != 1 {
		t.Errorf("last element focused %d times, want 1", elems[2].focused)
	}
}

func TestMiddleTabsFallThrough(t *testing.T) {
	c, elems := newFakeContainer("a", "b", "c")
	trap := NewFocusTrap()
	trap.Activate(c)

	c.active = elems[1]
	if trap.HandleKey(Key{Name: "Tab"}) {
		t.Error("Tab mid-list must use default behavior")
	}
	if trap.HandleKey(Key{Name: "Tab", Shift: true}) {
		t.Error("Shift+Tab mid-list must use default behavior")
	}
}

func TestOnlyTabIsIntercepted(t *testing.T) {
	c, elems := newFakeContainer("a", "b")
	trap := NewFocusTrap()
	trap.Activate(c)

	c.active = elems[1]
	for _, name := range []string{"Enter", "Escape", "ArrowDown", "a"} {
		if trap.HandleKey(Key{Name: name}) {
			t.Errorf("key %q must not be intercepted", name)
		}
	}
}

func TestHiddenContainerReleasesTrap(t *testing.T) {
	c, elems := newFakeContainer("a", "b")
	trap := NewFocusTrap()
	trap.Activate(c)

	c.visible = false
	c.active = elems[1]
	if trap.HandleKey(Key{Name: "Tab"}) {
		t.Error("hidden container must not trap keys")
	}
}

func TestDeactivateStopsInterception(t *testing.T) {
	c, elems := newFakeContainer("a", "b")
	trap := NewFocusTrap()
	trap.Activate(c)
	trap.Deactivate()

	c.active = elems[1]
	if trap.HandleKey(Key{Name: "Tab"}) {
		t.Error("deactivated trap must not consume keys")
	}
}

func TestEmptyContainer(t *testing.T) {
	c := &fakeContainer{visible: true}
	trap := NewFocusTrap()
	trap.Activate(c)
	if trap.HandleKey(Key{Name: "Tab"}) {
		t.Error("trap over zero focusables must not consume keys")
	}
}
