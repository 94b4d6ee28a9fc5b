package runtime

import "testing"

type fakeFocusable struct {
	focusable bool
	focused   bool
	children  []Widget
}

func (f *fakeFocusable) Measure(constraints Constraints) Size { return constraints.MaxSize() }
func (f *fakeFocusable) Layout(bounds Rect)                   {}
func (f *fakeFocusable) Render(ctx RenderContext)             {}
func (f *fakeFocusable) HandleMessage(msg Message) HandleResult {
	return Unhandled()
}
func (f *fakeFocusable) CanFocus() bool { return f.focusable }
func (f *fakeFocusable) Focus()         { f.focused = true }
func (f *fakeFocusable) Blur()          { f.focused = false }
func (f *fakeFocusable) IsFocused() bool {
	return f.focused
}
func (f *fakeFocusable) ChildWidgets() []Widget { return f.children }

func TestFocusScopeFirstRegisteredGetsFocus(t *testing.T) {
	scope := NewFocusScope()
	a := &fakeFocusable{focusable: true}
	b := &fakeFocusable{focusable: true}
	scope.Register(a)
	scope.Register(b)

	if !a.focused || b.focused {
		t.Fatal("first registered widget should hold focus")
	}
	if scope.Current() != a {
		t.Fatal("current should be the first widget")
	}
}

func TestFocusScopeSkipsNonFocusable(t *testing.T) {
	scope := NewFocusScope()
	scope.Register(&fakeFocusable{focusable: false})
	if scope.Current() != nil {
		t.Fatal("non-focusable widget should not register")
	}
}

func TestFocusScopeCycles(t *testing.T) {
	scope := NewFocusScope()
	a := &fakeFocusable{focusable: true}
	b := &fakeFocusable{focusable: true}
	c := &fakeFocusable{focusable: true}
	scope.Register(a)
	scope.Register(b)
	scope.Register(c)

	scope.FocusNext()
	if !b.focused || a.focused {
		t.Fatal("focus next should move a -> b")
	}
	scope.FocusNext()
	scope.FocusNext()
	if !a.focused {
		t.Fatal("focus next should wrap to the start")
	}
	scope.FocusPrev()
	if !c.focused {
		t.Fatal("focus prev should wrap to the end")
	}
}

func TestFocusScopeClearAndReset(t *testing.T) {
	scope := NewFocusScope()
	a := &fakeFocusable{focusable: true}
	scope.Register(a)

	scope.ClearFocus()
	if a.focused || scope.Current() != nil {
		t.Fatal("clear should blur the focused widget")
	}

	scope.Reset()
	scope.FocusNext()
	if scope.Current() != nil {
		t.Fatal("reset scope should hold no widgets")
	}
}

func TestRegisterFocusablesWalksTree(t *testing.T) {
	leaf := &fakeFocusable{focusable: true}
	root := &fakeFocusable{children: []Widget{leaf}}
	scope := NewFocusScope()
	RegisterFocusables(scope, root)
	if scope.Current() != leaf {
		t.Fatal("tree walk should register the focusable leaf")
	}
}
