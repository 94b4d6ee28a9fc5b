package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring animates a value toward a movable target with spring physics.
type Spring struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
}

// NewSpring creates a spring stepped at the given frame rate.
// Frequency and damping follow harmonica's conventions; damping below
// one overshoots, one is critical.
func NewSpring(fps int, frequency, damping float64) *Spring {
	if fps <= 0 {
		fps = 60
	}
	return &Spring{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Snap moves the spring instantly to a value and kills velocity.
func (s *Spring) Snap(value float64) {
	if s == nil {
		return
	}
	s.position = value
	s.velocity = 0
	s.target = value
}

// SetTarget retargets the spring, keeping current position and
// velocity so a new target supersedes an in-flight move smoothly.
func (s *Spring) SetTarget(target float64) {
	if s == nil {
		return
	}
	s.target = target
}

// Target returns the current target.
func (s *Spring) Target() float64 {
	if s == nil {
		return 0
	}
	return s.target
}

// Position returns the current position.
func (s *Spring) Position() float64 {
	if s == nil {
		return 0
	}
	return s.position
}

// Settled reports whether the spring has effectively reached its target.
func (s *Spring) Settled() bool {
	if s == nil {
		return true
	}
	return math.Abs(s.position-s.target) < 0.001 && math.Abs(s.velocity) < 0.001
}

// Step advances one frame and returns the new position.
func (s *Spring) Step() float64 {
	if s == nil {
		return 0
	}
	s.position, s.velocity = s.spring.Update(s.position, s.velocity, s.target)
	if s.Settled() {
		s.position = s.target
		s.velocity = 0
	}
	return s.position
}
