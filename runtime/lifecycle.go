package runtime

// Lifecycle is implemented by widgets that need mount/unmount hooks.
type Lifecycle interface {
	Mount()
	Unmount()
}

// MountTree calls Mount on widgets that implement Lifecycle, parents first.
func MountTree(root Widget) {
	if root == nil {
		return
	}
	if m, ok := root.(Lifecycle); ok {
		m.Mount()
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			MountTree(child)
		}
	}
}

// UnmountTree calls Unmount on widgets that implement Lifecycle, children first.
func UnmountTree(root Widget) {
	if root == nil {
		return
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			UnmountTree(child)
		}
	}
	if m, ok := root.(Lifecycle); ok {
		m.Unmount()
	}
}
