package runtime

// Widget is the core interface every renderable element implements.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// BoundsProvider is implemented by widgets that expose their laid-out
// bounds for hit testing.
type BoundsProvider interface {
	Bounds() Rect
}

// ChildProvider is implemented by container widgets so tree walks can
// reach their children.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// Focusable is implemented by widgets that participate in focus order.
type Focusable interface {
	Widget
	CanFocus() bool
	Focus()
	Blur()
	IsFocused() bool
}

// HandleResult reports whether a message was consumed and carries any
// commands for the app loop.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a consumed result with no commands.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns an ignored result.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand returns a consumed result carrying commands.
func WithCommand(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}
