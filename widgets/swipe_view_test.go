package widgets

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/plush-ui/runtime"
	"github.com/odvcencio/plush-ui/terminal"
)

// stubCell is a minimal reusable page view.
type stubCell struct {
	Base
	index   int
	mounted bool
}

func (s *stubCell) Mount()   { s.mounted = true }
func (s *stubCell) Unmount() { s.mounted = false }

// stubSource counts how cells are created versus recycled.
type stubSource struct {
	count   int
	created int
	reused  int
}

func (s *stubSource) CellCount() int { return s.count }

func (s *stubSource) CellForIndex(index int, reuse runtime.Widget) runtime.Widget {
	if cell, ok := reuse.(*stubCell); ok {
		s.reused++
		cell.index = index
		return cell
	}
	s.created++
	return &stubCell{index: index}
}

// eventRecorder captures observer callbacks in order.
type eventRecorder struct {
	events []string
}

func (r *eventRecorder) CellDisplayed(index int) {
	r.events = append(r.events, fmt.Sprintf("displayed %d", index))
}

func (r *eventRecorder) CellSelected(index int) {
	r.events = append(r.events, fmt.Sprintf("selected %d", index))
}

func (r *eventRecorder) Transition(top, bottom int, percent float64) {
	r.events = append(r.events, fmt.Sprintf("transition %d %d %.2f", top, bottom, percent))
}

func (r *eventRecorder) FadeIn(index int, percent float64) {
	r.events = append(r.events, fmt.Sprintf("fadein %d %.2f", index, percent))
}

func (r *eventRecorder) FadeOut(index int, percent float64) {
	r.events = append(r.events, fmt.Sprintf("fadeout %d %.2f", index, percent))
}

func newTestSwipeView(count int) (*SwipeView, *stubSource) {
	source := &stubSource{count: count}
	v := NewSwipeView()
	v.SetDataSource(source)
	v.Layout(runtime.Rect{X: 0, Y: 0, Width: 40, Height: 10})
	return v, source
}

func TestSwipeViewInitialState(t *testing.T) {
	v, source := newTestSwipeView(5)

	if got := v.VisibleIndices(); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("visible = %v, want [0]", got)
	}
	if got := v.CurrentIndex(); got != 0 {
		t.Fatalf("current = %d, want 0", got)
	}
	if got := v.Indicator().NumberOfPages(); got != 5 {
		t.Fatalf("indicator pages = %d, want 5", got)
	}
	if source.created == 0 {
		t.Fatal("data source never asked for a cell")
	}
}

func TestSwipeViewScrollToViewClampsPastEnd(t *testing.T) {
	v, _ := newTestSwipeView(5)

	// One past the last index is allowed and lands on the last cell.
	v.ScrollToView(5)
	if got := v.CurrentIndex(); got != 4 {
		t.Fatalf("current after ScrollToView(count) = %d, want 4", got)
	}
	if got := v.VisibleIndices(); !reflect.DeepEqual(got, []int{4}) {
		t.Fatalf("visible = %v, want [4]", got)
	}

	// Far past the end clamps the same way.
	v.ScrollToView(100)
	if got := v.CurrentIndex(); got != 4 {
		t.Fatalf("current after ScrollToView(100) = %d, want 4", got)
	}

	v.ScrollToView(-3)
	if got := v.CurrentIndex(); got != 0 {
		t.Fatalf("current after ScrollToView(-3) = %d, want 0", got)
	}
}

func TestSwipeViewMidScrollVisiblePair(t *testing.T) {
	v, _ := newTestSwipeView(5)

	v.viewport.SetOffset(14)
	v.refresh()

	if got := v.VisibleIndices(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("visible = %v, want [1 2]", got)
	}
	// Tracked current drifts no further than the visible bounds force.
	if got := v.CurrentIndex(); got != 1 {
		t.Fatalf("current = %d, want 1", got)
	}
}

func TestSwipeViewTopAndBottomCell(t *testing.T) {
	v, _ := newTestSwipeView(5)
	v.viewport.SetOffset(14)
	v.refresh()

	if top, ok := v.TopCell(); !ok || top != 1 {
		t.Fatalf("top cell = %d/%v, want 1/true", top, ok)
	}
	if bottom, ok := v.BottomCell(); !ok || bottom != 2 {
		t.Fatalf("bottom cell = %d/%v, want 2/true", bottom, ok)
	}

	empty, _ := newTestSwipeView(0)
	if _, ok := empty.TopCell(); ok {
		t.Fatal("empty view should report no top cell")
	}
}

func TestSwipeViewRecyclesThroughPool(t *testing.T) {
	v, source := newTestSwipeView(10)

	for i := 1; i < 10; i++ {
		v.ScrollToView(i)
	}

	if got := len(v.visible); got != 1 {
		t.Fatalf("visible count = %d, want 1", got)
	}
	if got := len(v.pool); got > 2 {
		t.Fatalf("pool size = %d, want at most 2", got)
	}
	if source.reused == 0 {
		t.Fatal("recycled widgets never reached the data source")
	}
	if source.created > 3 {
		t.Fatalf("created %d cells for a paged walk, want a small pool", source.created)
	}
}

func TestSwipeViewObserverEvents(t *testing.T) {
	v, _ := newTestSwipeView(5)
	recorder := &eventRecorder{}
	v.SetObserver(recorder)

	v.viewport.SetOffset(4)
	v.refresh()

	want := []string{
		"transition 0 1 0.40",
		"fadeout 0 0.40",
		"fadein 1 0.40",
	}
	if !reflect.DeepEqual(recorder.events, want) {
		t.Fatalf("events = %v, want %v", recorder.events, want)
	}
}

func TestSwipeViewDisplayedTracksCurrentIndex(t *testing.T) {
	v, _ := newTestSwipeView(5)
	recorder := &eventRecorder{}
	v.SetObserver(recorder)

	// Partial scrolls that never move the current index stay silent:
	// cells entering and leaving the visible set are not "displayed".
	for _, offset := range []float64{4, 0, 4} {
		v.viewport.SetOffset(offset)
		v.refresh()
	}
	for _, event := range recorder.events {
		if strings.HasPrefix(event, "displayed") {
			t.Fatalf("partial scroll emitted %q with current still 0", event)
		}
	}
	if got := v.CurrentIndex(); got != 0 {
		t.Fatalf("current = %d, want 0", got)
	}

	// Committing to a new page fires exactly once.
	v.ScrollToView(1)
	var displayed []string
	for _, event := range recorder.events {
		if strings.HasPrefix(event, "displayed") {
			displayed = append(displayed, event)
		}
	}
	if !reflect.DeepEqual(displayed, []string{"displayed 1"}) {
		t.Fatalf("displayed events = %v, want [displayed 1]", displayed)
	}
}

func TestSwipeViewNoFadeAtRest(t *testing.T) {
	v, _ := newTestSwipeView(5)
	recorder := &eventRecorder{}
	v.SetObserver(recorder)

	v.ScrollToView(2)
	for _, event := range recorder.events {
		if event != "displayed 2" {
			t.Fatalf("resting scroll emitted %q", event)
		}
	}
}

func TestSwipeViewKeyPaging(t *testing.T) {
	v, _ := newTestSwipeView(3)
	v.Focus()

	result := v.HandleMessage(runtime.KeyMsg{Key: terminal.KeyDown})
	if !result.Handled {
		t.Fatal("down key should be consumed")
	}
	settleSwipe(t, v)
	if got := v.CurrentIndex(); got != 1 {
		t.Fatalf("current after down = %d, want 1", got)
	}

	v.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnd})
	settleSwipe(t, v)
	if got := v.CurrentIndex(); got != 2 {
		t.Fatalf("current after end = %d, want 2", got)
	}

	v.HandleMessage(runtime.KeyMsg{Key: terminal.KeyHome})
	settleSwipe(t, v)
	if got := v.CurrentIndex(); got != 0 {
		t.Fatalf("current after home = %d, want 0", got)
	}

	// Paging past the first cell stays put.
	v.HandleMessage(runtime.KeyMsg{Key: terminal.KeyUp})
	settleSwipe(t, v)
	if got := v.CurrentIndex(); got != 0 {
		t.Fatalf("current after up at start = %d, want 0", got)
	}
}

func TestSwipeViewEnterSelectsCurrent(t *testing.T) {
	v, _ := newTestSwipeView(5)
	recorder := &eventRecorder{}
	v.SetObserver(recorder)
	v.Focus()
	v.ScrollToView(3)

	v.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnter})
	if got := recorder.events[len(recorder.events)-1]; got != "selected 3" {
		t.Fatalf("last event = %q, want \"selected 3\"", got)
	}
}

func TestSwipeViewWheelIdleSnap(t *testing.T) {
	v, _ := newTestSwipeView(5)

	v.HandleMessage(runtime.MouseMsg{X: 5, Y: 5, Button: terminal.MouseWheelDown})
	for i := 0; i < 4; i++ {
		v.HandleMessage(runtime.MouseMsg{X: 5, Y: 5, Button: terminal.MouseWheelDown})
	}
	if got := v.viewport.Offset(); got != 10 {
		t.Fatalf("offset after five notches = %v, want 10", got)
	}
	if v.Indicator().IsHidden() {
		t.Fatal("wheel activity should flash the indicator")
	}

	// Scroll partway, then let the idle timer deliver: the view snaps
	// back to the top visible cell.
	v.HandleMessage(runtime.MouseMsg{X: 5, Y: 5, Button: terminal.MouseWheelDown})
	if got := v.viewport.Offset(); got != 12 {
		t.Fatalf("offset mid-drag = %v, want 12", got)
	}
	v.HandleMessage(runtime.UserMsg{Data: swipeIdleMsg{gen: v.wheelIdle.Arm()}})
	settleSwipe(t, v)
	if got := v.viewport.Offset(); got != 10 {
		t.Fatalf("offset after snap = %v, want 10", got)
	}
	if got := v.CurrentIndex(); got != 1 {
		t.Fatalf("current after snap = %d, want 1", got)
	}
}

func TestSwipeViewStaleWheelIdleIgnored(t *testing.T) {
	v, _ := newTestSwipeView(5)

	v.HandleMessage(runtime.MouseMsg{X: 5, Y: 5, Button: terminal.MouseWheelDown})
	stale := v.wheelIdle.Arm()
	v.wheelIdle.Arm()
	v.HandleMessage(runtime.UserMsg{Data: swipeIdleMsg{gen: stale}})
	if v.snapping {
		t.Fatal("stale idle delivery should not start a snap")
	}
}

func TestSwipeViewReloadData(t *testing.T) {
	v, source := newTestSwipeView(5)
	v.ScrollToView(4)

	source.count = 2
	v.ReloadData()

	if got := v.Indicator().NumberOfPages(); got != 2 {
		t.Fatalf("indicator pages = %d, want 2", got)
	}
	if got := v.CurrentIndex(); got != 0 {
		t.Fatalf("current after reload = %d, want rewind to 0", got)
	}
	if got := v.PercentIndex(); got != 0 {
		t.Fatalf("percent after reload = %v, want 0", got)
	}

	source.count = 0
	v.ReloadData()
	if got := v.VisibleIndices(); len(got) != 0 {
		t.Fatalf("visible with empty source = %v, want none", got)
	}
}

func TestSwipeViewMountPropagatesToLateCells(t *testing.T) {
	v, _ := newTestSwipeView(3)
	runtime.MountTree(v)

	v.ScrollToView(2)
	cell := v.visible[2].view.(*stubCell)
	if !cell.mounted {
		t.Fatal("cell created after mount should be mounted")
	}

	v.ScrollToView(0)
	if cell.mounted {
		t.Fatal("retired cell should be unmounted")
	}
}

func TestSwipeViewCurrentSignal(t *testing.T) {
	v, _ := newTestSwipeView(5)
	var seen []int
	v.CurrentSignal().Subscribe(func() {
		seen = append(seen, v.CurrentSignal().Get())
	})

	v.ScrollToView(2)
	v.ScrollToView(2)
	v.ScrollToView(4)
	if !reflect.DeepEqual(seen, []int{2, 4}) {
		t.Fatalf("signal updates = %v, want [2 4]", seen)
	}
}

// settleSwipe drives frame ticks until any in-flight snap completes.
func settleSwipe(t *testing.T, v *SwipeView) {
	t.Helper()
	base := time.Now()
	for i := 0; i < 1000 && v.snapping; i++ {
		v.HandleMessage(runtime.TickMsg{Time: base.Add(time.Duration(i) * time.Second / 60)})
	}
	if v.snapping {
		t.Fatal("snap never settled")
	}
}
