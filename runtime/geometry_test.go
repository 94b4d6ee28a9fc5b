package runtime

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	if !r.Contains(2, 3) || !r.Contains(5, 4) {
		t.Fatal("corner points should be inside")
	}
	if r.Contains(6, 3) || r.Contains(2, 5) {
		t.Fatal("exclusive edges should be outside")
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if got := a.Intersection(b); got != (Rect{X: 5, Y: 5, Width: 5, Height: 5}) {
		t.Fatalf("intersection = %+v, want {5 5 5 5}", got)
	}
	c := Rect{X: 20, Y: 20, Width: 2, Height: 2}
	if got := a.Intersection(c); !got.Empty() {
		t.Fatalf("disjoint intersection = %+v, want empty", got)
	}
}

func TestConstraintsConstrain(t *testing.T) {
	c := Constraints{MinWidth: 2, MinHeight: 2, MaxWidth: 10, MaxHeight: 5}
	if got := c.Constrain(Size{Width: 20, Height: 1}); got != (Size{Width: 10, Height: 2}) {
		t.Fatalf("constrain = %+v, want {10 2}", got)
	}

	// Zero max means unbounded.
	open := Constraints{MinWidth: 1, MinHeight: 1}
	if got := open.Constrain(Size{Width: 500, Height: 500}); got != (Size{Width: 500, Height: 500}) {
		t.Fatalf("unbounded constrain = %+v, want unchanged", got)
	}
}

func TestTightConstraints(t *testing.T) {
	c := Tight(Size{Width: 7, Height: 3})
	if got := c.Constrain(Size{Width: 1, Height: 100}); got != (Size{Width: 7, Height: 3}) {
		t.Fatalf("tight constrain = %+v, want {7 3}", got)
	}
}
