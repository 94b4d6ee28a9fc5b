package runtime

import "github.com/odvcencio/plush-ui/backend"

// Screen owns the root widget tree, its focus scope, and the render
// buffer. Unlike a full windowing compositor there is a single layer;
// the pager surface never stacks modals.
type Screen struct {
	width, height int
	root          Widget
	focus         *FocusScope
	buffer        *Buffer
	services      Services
}

// NewScreen creates a screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
		focus:  NewFocusScope(),
	}
}

// SetServices configures app services for bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays-out the tree.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	if s.root != nil {
		s.root.Layout(Rect{0, 0, w, h})
	}
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot swaps the root widget, unbinding the old tree and binding,
// laying out, and mounting the new one.
func (s *Screen) SetRoot(root Widget) {
	if s.root != nil {
		UnmountTree(s.root)
		UnbindTree(s.root)
	}
	s.root = root
	s.focus.Reset()
	if root == nil {
		return
	}
	BindTree(root, s.services)
	root.Layout(Rect{0, 0, s.width, s.height})
	MountTree(root)
	RegisterFocusables(s.focus, root)
}

// Root returns the root widget.
func (s *Screen) Root() Widget {
	return s.root
}

// FocusScope returns the screen's focus scope.
func (s *Screen) FocusScope() *FocusScope {
	return s.focus
}

// Render draws the widget tree into the buffer.
func (s *Screen) Render() {
	if s.root == nil {
		return
	}
	s.root.Render(RenderContext{
		Buffer:  s.buffer,
		Focused: true,
		Bounds:  Rect{0, 0, s.width, s.height},
	})
}

// HandleMessage dispatches a message to the widget tree and resolves
// focus commands locally. Remaining commands bubble to the app.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if s.root == nil {
		return Unhandled()
	}
	result := s.root.HandleMessage(msg)
	remaining := result.Commands[:0]
	for _, cmd := range result.Commands {
		switch cmd.(type) {
		case FocusNext:
			s.focus.FocusNext()
		case FocusPrev:
			s.focus.FocusPrev()
		default:
			remaining = append(remaining, cmd)
		}
	}
	result.Commands = remaining
	return result
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool
	Bounds  Rect
}

// Sub creates a context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
