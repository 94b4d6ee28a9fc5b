// Package anim provides the small animation primitives the pager
// widgets drive from frame ticks: fixed-duration transitions, spring
// physics, and a debounced single-slot timer.
package anim

import "time"

// Transition interpolates a value over a fixed duration and runs a
// completion fixup exactly once. Starting a new transition supersedes
// an in-flight one; the superseded fixup never runs, so fixups must be
// written to be safe whenever they finally fire.
type Transition struct {
	active   bool
	from     float64
	to       float64
	value    float64
	elapsed  time.Duration
	duration time.Duration
	fixup    func()
}

// Start begins a transition from the current state to target.
// A zero or negative duration completes immediately.
func (t *Transition) Start(from, to float64, duration time.Duration, fixup func()) {
	if t == nil {
		return
	}
	t.from = from
	t.to = to
	t.value = from
	t.elapsed = 0
	t.duration = duration
	t.fixup = fixup
	t.active = true
	if duration <= 0 {
		t.finish()
	}
}

// Step advances the transition by dt and returns the current value.
// done is true on the step that completes the transition; the fixup
// has already run by the time Step returns.
func (t *Transition) Step(dt time.Duration) (value float64, done bool) {
	if t == nil || !t.active {
		if t == nil {
			return 0, false
		}
		return t.value, false
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.finish()
		return t.value, true
	}
	progress := float64(t.elapsed) / float64(t.duration)
	t.value = t.from + (t.to-t.from)*easeInOut(progress)
	return t.value, false
}

// Active reports whether a transition is in flight.
func (t *Transition) Active() bool {
	return t != nil && t.active
}

// Value returns the current interpolated value.
func (t *Transition) Value() float64 {
	if t == nil {
		return 0
	}
	return t.value
}

// Cancel abandons the transition without running its fixup.
func (t *Transition) Cancel() {
	if t == nil {
		return
	}
	t.active = false
	t.fixup = nil
}

func (t *Transition) finish() {
	t.value = t.to
	t.active = false
	fixup := t.fixup
	t.fixup = nil
	if fixup != nil {
		fixup()
	}
}

func easeInOut(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - 2*(1-p)*(1-p)
}
