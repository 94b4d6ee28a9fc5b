package runtime

// Bindable widgets receive app services when mounted into a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when removed.
type Unbindable interface {
	Unbind()
}

// BindTree calls Bind on widgets that implement Bindable.
func BindTree(root Widget, services Services) {
	if services.isZero() || root == nil {
		return
	}
	if b, ok := root.(Bindable); ok {
		b.Bind(services)
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			BindTree(child, services)
		}
	}
}

// UnbindTree calls Unbind on widgets that implement Unbindable.
func UnbindTree(root Widget) {
	if root == nil {
		return
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			UnbindTree(child)
		}
	}
	if u, ok := root.(Unbindable); ok {
		u.Unbind()
	}
}
