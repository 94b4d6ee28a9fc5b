package anim

// IdleTimer is a single-slot debounced timer handle. Each Arm
// invalidates any previously armed delivery; a delivery is live only
// while its generation matches. The caller schedules the actual delay
// (typically through the app's After effect) and tags the resulting
// message with the generation.
type IdleTimer struct {
	gen uint64
}

// Arm invalidates prior deliveries and returns the new generation.
func (t *IdleTimer) Arm() uint64 {
	if t == nil {
		return 0
	}
	t.gen++
	return t.gen
}

// Cancel invalidates prior deliveries without arming a new one.
func (t *IdleTimer) Cancel() {
	if t == nil {
		return
	}
	t.gen++
}

// Live reports whether a delivery with the given generation is still
// the most recently armed one.
func (t *IdleTimer) Live(gen uint64) bool {
	return t != nil && gen != 0 && gen == t.gen
}
