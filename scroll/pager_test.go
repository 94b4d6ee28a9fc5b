package scroll

import (
	"math"
	"reflect"
	"testing"
)

func TestPercentIndex(t *testing.T) {
	if got := PercentIndex(30, 20); got != 1.5 {
		t.Fatalf("percent = %v, want 1.5", got)
	}
	if got := PercentIndex(30, 0); got != 0 {
		t.Fatalf("percent with zero extent = %v, want 0", got)
	}
}

func TestVisibleIndices(t *testing.T) {
	cases := []struct {
		name    string
		count   int
		percent float64
		want    []int
	}{
		{"empty content", 0, 0.5, nil},
		{"single cell", 1, 0, []int{0}},
		{"resting at start", 5, 0, []int{0}},
		{"before start", 5, -0.3, []int{0}},
		{"resting at end", 5, 4, []int{4}},
		{"past end", 5, 4.7, []int{4}},
		{"between cells", 5, 1.4, []int{1, 2}},
		{"resting mid", 5, 2, []int{2}},
	}
	for _, tc := range cases {
		if got := VisibleIndices(tc.count, tc.percent); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: visible = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsRestingBoundary(t *testing.T) {
	if !IsRestingBoundary(0, 5, 0) {
		t.Fatal("first cell at start should rest")
	}
	if !IsRestingBoundary(0, 5, -0.2) {
		t.Fatal("first cell before start should rest")
	}
	if !IsRestingBoundary(4, 5, 4) {
		t.Fatal("last cell at end should rest")
	}
	if IsRestingBoundary(2, 5, 2) {
		t.Fatal("interior cell never rests at a boundary")
	}
	if IsRestingBoundary(0, 5, 0.5) {
		t.Fatal("first cell mid-scroll should not rest")
	}
}

func TestCellOrigin(t *testing.T) {
	// Pinned boundary cells sit at their resting positions.
	if got := CellOrigin(0, 5, 10, 0); got != 0 {
		t.Fatalf("first cell origin = %d, want 0", got)
	}
	if got := CellOrigin(4, 5, 10, 40); got != 40 {
		t.Fatalf("last cell origin = %d, want 40", got)
	}
	// Tracking cells follow the floored live offset.
	if got := CellOrigin(1, 5, 10, 14.7); got != 14 {
		t.Fatalf("tracking origin = %d, want 14", got)
	}
	if got := CellOrigin(2, 5, 10, 14.7); got != 14 {
		t.Fatalf("incoming tracking origin = %d, want 14", got)
	}
}

func TestFadeInPercent(t *testing.T) {
	if _, ok := FadeInPercent(3, 1, 1.5); ok {
		t.Fatal("two cells away is not a fade-in candidate")
	}
	if _, ok := FadeInPercent(1, 1, 1.5); ok {
		t.Fatal("current cell is not a fade-in candidate")
	}
	value, ok := FadeInPercent(2, 1, 1.4)
	if !ok || math.Abs(value-0.4) > 1e-9 {
		t.Fatalf("fade-in below = %v/%v, want 0.4/true", value, ok)
	}
	value, ok = FadeInPercent(0, 1, 0.7)
	if !ok || math.Abs(value-(-0.3)) > 1e-9 {
		t.Fatalf("fade-in above = %v/%v, want -0.3/true", value, ok)
	}
	value, _ = FadeInPercent(2, 1, 9)
	if value != 1 {
		t.Fatalf("fade-in clamps high = %v, want 1", value)
	}
	value, _ = FadeInPercent(0, 1, -9)
	if value != -1 {
		t.Fatalf("fade-in clamps low = %v, want -1", value)
	}
}

func TestFadeOutPercent(t *testing.T) {
	if _, ok := FadeOutPercent(2, 2); ok {
		t.Fatal("zero departure should be suppressed")
	}
	if _, ok := FadeOutPercent(2, 2+FadeEpsilon/2); ok {
		t.Fatal("sub-epsilon departure should be suppressed")
	}
	if _, ok := FadeOutPercent(2, 3.5); ok {
		t.Fatal("departure past one full cell should be suppressed")
	}
	value, ok := FadeOutPercent(2, 2.25)
	if !ok || math.Abs(value-0.25) > 1e-9 {
		t.Fatalf("fade-out down = %v/%v, want 0.25/true", value, ok)
	}
	value, ok = FadeOutPercent(2, 1.4)
	if !ok || math.Abs(value-(-0.6)) > 1e-9 {
		t.Fatalf("fade-out up = %v/%v, want -0.6/true", value, ok)
	}
}

func TestTransitionPercent(t *testing.T) {
	if got := TransitionPercent(2.75); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("transition = %v, want 0.75", got)
	}
	if got := TransitionPercent(3); got != 0 {
		t.Fatalf("resting transition = %v, want 0", got)
	}
	if got := TransitionPercent(-0.25); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("negative transition = %v, want 0.75", got)
	}
}

func TestSnapIndex(t *testing.T) {
	if _, ok := SnapIndex(nil); ok {
		t.Fatal("empty visible set has no snap index")
	}
	if got, _ := SnapIndex([]int{2, 3}); got != 2 {
		t.Fatalf("snap = %d, want 2", got)
	}
	if got, _ := SnapIndex([]int{4}); got != 4 {
		t.Fatalf("single snap = %d, want 4", got)
	}
}

func TestClosestIndex(t *testing.T) {
	if got := ClosestIndex(3, 1, 2); got != 2 {
		t.Fatalf("clamp down = %d, want 2", got)
	}
	if got := ClosestIndex(0, 1, 2); got != 1 {
		t.Fatalf("clamp up = %d, want 1", got)
	}
	if got := ClosestIndex(2, 1, 3); got != 2 {
		t.Fatalf("in-range = %d, want 2", got)
	}
}
