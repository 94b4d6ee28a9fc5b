package runtime

// FocusScope tracks the focused widget within a screen.
type FocusScope struct {
	widgets []Focusable
	current int
}

// NewFocusScope creates an empty focus scope.
func NewFocusScope() *FocusScope {
	return &FocusScope{current: -1}
}

// Register adds a focusable widget to the tab order.
// The first registered widget receives focus.
func (f *FocusScope) Register(w Focusable) {
	if f == nil || w == nil || !w.CanFocus() {
		return
	}
	f.widgets = append(f.widgets, w)
	if f.current < 0 {
		f.current = 0
		w.Focus()
	}
}

// Reset drops all registered widgets and clears focus.
func (f *FocusScope) Reset() {
	if f == nil {
		return
	}
	f.ClearFocus()
	f.widgets = nil
}

// Current returns the focused widget, or nil.
func (f *FocusScope) Current() Focusable {
	if f == nil || f.current < 0 || f.current >= len(f.widgets) {
		return nil
	}
	return f.widgets[f.current]
}

// FocusNext moves focus forward in registration order.
func (f *FocusScope) FocusNext() {
	f.move(1)
}

// FocusPrev moves focus backward in registration order.
func (f *FocusScope) FocusPrev() {
	f.move(-1)
}

// ClearFocus blurs the focused widget.
func (f *FocusScope) ClearFocus() {
	if current := f.Current(); current != nil {
		current.Blur()
	}
	if f != nil {
		f.current = -1
	}
}

func (f *FocusScope) move(delta int) {
	if f == nil || len(f.widgets) == 0 {
		return
	}
	if current := f.Current(); current != nil {
		current.Blur()
	}
	f.current = ((f.current+delta)%len(f.widgets) + len(f.widgets)) % len(f.widgets)
	f.widgets[f.current].Focus()
}

// RegisterFocusables walks the tree registering focusable widgets.
func RegisterFocusables(scope *FocusScope, root Widget) {
	if scope == nil || root == nil {
		return
	}
	if focusable, ok := root.(Focusable); ok && focusable.CanFocus() {
		scope.Register(focusable)
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			RegisterFocusables(scope, child)
		}
	}
}
