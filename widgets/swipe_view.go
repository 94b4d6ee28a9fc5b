package widgets

import (
	"sort"
	"time"

	"github.com/odvcencio/plush-ui/anim"
	"github.com/odvcencio/plush-ui/backend"
	"github.com/odvcencio/plush-ui/runtime"
	"github.com/odvcencio/plush-ui/scroll"
	"github.com/odvcencio/plush-ui/state"
	"github.com/odvcencio/plush-ui/terminal"
)

const (
	// wheelStepFraction is how much of a page one wheel notch scrolls.
	wheelStepFraction = 0.2
	// wheelIdleDelay is how long after the last wheel event the view
	// waits before snapping to a resting page.
	wheelIdleDelay = 250 * time.Millisecond
)

// swipeIdleMsg is delivered when wheel input has gone quiet.
type swipeIdleMsg struct {
	gen uint64
}

// DataSource supplies page cells on demand. CellForIndex may receive a
// recycled widget from the reuse pool; returning it reconfigured avoids
// an allocation, returning a fresh widget discards it.
type DataSource interface {
	CellCount() int
	CellForIndex(index int, reuse runtime.Widget) runtime.Widget
}

// Observer receives paging lifecycle events. All methods run on the
// update loop; implementations must not block.
type Observer interface {
	// CellDisplayed fires when a cell becomes the current cell. Cells
	// passing through the visible set without taking over do not fire.
	CellDisplayed(index int)
	// CellSelected fires when the user activates the current cell.
	CellSelected(index int)
	// Transition reports fractional progress between the top and
	// bottom visible cells, in [0, 1).
	Transition(top, bottom int, percent float64)
	// FadeIn reports a neighbor cell's signed approach percent,
	// clamped to ±1.
	FadeIn(index int, percent float64)
	// FadeOut reports the current cell's signed departure percent.
	// It never fires for magnitudes at or below the fade epsilon or
	// beyond one full page.
	FadeOut(index int, percent float64)
}

// ObserverFuncs adapts standalone functions to Observer. Nil fields
// are skipped.
type ObserverFuncs struct {
	OnCellDisplayed func(index int)
	OnCellSelected  func(index int)
	OnTransition    func(top, bottom int, percent float64)
	OnFadeIn        func(index int, percent float64)
	OnFadeOut       func(index int, percent float64)
}

func (o ObserverFuncs) CellDisplayed(index int) {
	if o.OnCellDisplayed != nil {
		o.OnCellDisplayed(index)
	}
}

func (o ObserverFuncs) CellSelected(index int) {
	if o.OnCellSelected != nil {
		o.OnCellSelected(index)
	}
}

func (o ObserverFuncs) Transition(top, bottom int, percent float64) {
	if o.OnTransition != nil {
		o.OnTransition(top, bottom, percent)
	}
}

func (o ObserverFuncs) FadeIn(index int, percent float64) {
	if o.OnFadeIn != nil {
		o.OnFadeIn(index, percent)
	}
}

func (o ObserverFuncs) FadeOut(index int, percent float64) {
	if o.OnFadeOut != nil {
		o.OnFadeOut(index, percent)
	}
}

// swipeCell is a visible page entry.
type swipeCell struct {
	view    runtime.Widget
	opacity float64
}

// SwipeView is a full-bleed vertical pager. One cell rests on screen
// at a time; scrolling cross-fades between at most two live cells,
// recycling their widgets through a two-slot pool. A PageIndicator
// overlays the right edge and flashes on page changes.
type SwipeView struct {
	Component

	dataSource DataSource
	observer   Observer
	indicator  *PageIndicator
	focused    bool

	viewport *scroll.Viewport
	extent   scroll.FixedExtentIndex
	spring   *anim.Spring
	snapping bool

	visible map[int]*swipeCell
	pool    []runtime.Widget

	current    int
	hasCurrent bool
	currentSig *state.Signal[int]

	wheelIdle  anim.IdleTimer
	background backend.Color
	mounted    bool
}

// NewSwipeView creates an empty pager.
func NewSwipeView() *SwipeView {
	v := &SwipeView{
		indicator:  NewPageIndicator(),
		viewport:   scroll.NewViewport(),
		spring:     anim.NewSpring(60, 12.0, 0.9),
		visible:    make(map[int]*swipeCell),
		currentSig: state.NewSignal(0),
	}
	v.currentSig.SetEqualFunc(state.EqualComparable[int])
	v.extent = scroll.FixedExtentIndex{Count: v.cellCount}
	return v
}

// SetDataSource installs the cell supplier and reloads.
func (v *SwipeView) SetDataSource(ds DataSource) {
	if v == nil {
		return
	}
	v.dataSource = ds
	v.ReloadData()
}

// SetObserver installs the event receiver.
func (v *SwipeView) SetObserver(obs Observer) {
	if v == nil {
		return
	}
	v.observer = obs
}

// Indicator exposes the overlay page indicator for styling.
func (v *SwipeView) Indicator() *PageIndicator {
	if v == nil {
		return nil
	}
	return v.indicator
}

// SetBackground sets the color cells cross-fade toward.
func (v *SwipeView) SetBackground(color backend.Color) {
	if v == nil {
		return
	}
	v.background = color
	v.indicator.SetBackground(color)
	v.Invalidate()
}

// CurrentIndex returns the tracked current page.
func (v *SwipeView) CurrentIndex() int {
	if v == nil {
		return 0
	}
	return v.current
}

// CurrentSignal exposes the current page as reactive state.
func (v *SwipeView) CurrentSignal() state.Readable[int] {
	return v.currentSig
}

// PercentIndex returns the scroll position in page units.
func (v *SwipeView) PercentIndex() float64 {
	if v == nil {
		return 0
	}
	return v.percent()
}

// TopCell returns the minimum visible index.
func (v *SwipeView) TopCell() (int, bool) {
	visible := v.VisibleIndices()
	if len(visible) == 0 {
		return 0, false
	}
	return visible[0], true
}

// BottomCell returns the maximum visible index.
func (v *SwipeView) BottomCell() (int, bool) {
	visible := v.VisibleIndices()
	if len(visible) == 0 {
		return 0, false
	}
	return visible[len(visible)-1], true
}

// VisibleIndices returns the live cell indices in ascending order.
func (v *SwipeView) VisibleIndices() []int {
	if v == nil {
		return nil
	}
	indices := make([]int, 0, len(v.visible))
	for i := range v.visible {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// ReloadData recycles every live cell, rewinds to the first page, and
// rebuilds the visible set from the data source.
func (v *SwipeView) ReloadData() {
	if v == nil {
		return
	}
	for index, cell := range v.visible {
		v.retire(index, cell)
	}
	v.hasCurrent = false
	v.syncContent()
	v.viewport.SetOffset(0)
	v.spring.Snap(0)
	v.snapping = false
	v.refresh()
	v.Invalidate()
}

// ScrollToView scrolls so the given cell rests on screen. The index
// clamps into [0, count]; asking for the one-past-the-end index lands
// on the last cell because the offset clamps to the content extent.
func (v *SwipeView) ScrollToView(index int) {
	if v == nil {
		return
	}
	count := v.cellCount()
	if index < 0 {
		index = 0
	}
	if index > count {
		index = count
	}
	v.snapping = false
	v.viewport.SetOffset(float64(index * v.extent.Extent))
	v.spring.Snap(v.viewport.Offset())
	v.refresh()
	v.Invalidate()
}

// ChildWidgets returns the indicator and live cells for tree walks.
func (v *SwipeView) ChildWidgets() []runtime.Widget {
	if v == nil {
		return nil
	}
	children := []runtime.Widget{v.indicator}
	for _, i := range v.VisibleIndices() {
		children = append(children, v.visible[i].view)
	}
	return children
}

// CanFocus returns true; the pager consumes paging keys.
func (v *SwipeView) CanFocus() bool { return true }

// Focus marks the pager focused.
func (v *SwipeView) Focus() { v.focused = true }

// Blur marks the pager unfocused.
func (v *SwipeView) Blur() { v.focused = false }

// IsFocused reports keyboard focus.
func (v *SwipeView) IsFocused() bool { return v != nil && v.focused }

// Mount marks the view live so late-created cells mount too.
func (v *SwipeView) Mount() {
	v.mounted = true
}

// Unmount marks the view dead. Live cells unmount through the tree walk.
func (v *SwipeView) Unmount() {
	v.mounted = false
}

// Layout assigns bounds, sizes pages to the full view height, and
// keeps the current page resting on screen across resizes.
func (v *SwipeView) Layout(bounds runtime.Rect) {
	v.Base.Layout(bounds)
	resting := v.current
	v.extent.Extent = bounds.Height
	v.viewport.SetViewExtent(bounds.Height)
	v.syncContent()
	if v.hasCurrent && !v.snapping {
		v.viewport.SetOffset(v.extent.OffsetForIndex(resting))
		v.spring.Snap(v.viewport.Offset())
	}
	v.indicator.Layout(runtime.Rect{
		X:      bounds.X + bounds.Width - 1,
		Y:      bounds.Y,
		Width:  1,
		Height: bounds.Height,
	})
	for _, cell := range v.visible {
		cell.view.Layout(bounds)
	}
	v.refresh()
}

// HandleMessage consumes paging input and advances animations.
func (v *SwipeView) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if v == nil {
		return runtime.Unhandled()
	}
	switch m := msg.(type) {
	case runtime.KeyMsg:
		if v.focused {
			if result := v.handleKey(m); result.Handled {
				return result
			}
		}
	case runtime.MouseMsg:
		if result := v.handleMouse(m); result.Handled {
			return result
		}
	case runtime.TickMsg:
		indicatorResult := v.indicator.HandleMessage(msg)
		cellsHandled := v.forward(msg)
		if v.stepSnap() || indicatorResult.Handled || cellsHandled {
			return runtime.Handled()
		}
		return runtime.Unhandled()
	case runtime.UserMsg:
		if idle, ok := m.Data.(swipeIdleMsg); ok {
			if v.wheelIdle.Live(idle.gen) {
				v.snapToRest()
			}
			return runtime.Handled()
		}
		if result := v.indicator.HandleMessage(msg); result.Handled {
			return result
		}
	}
	if v.forward(msg) {
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

// Render draws live cells bottom-up so the higher index lands on top,
// cross-faded by each cell's opacity, then overlays the indicator.
func (v *SwipeView) Render(ctx runtime.RenderContext) {
	if v == nil || v.bounds.Empty() {
		return
	}
	bg := backend.DefaultStyle().Background(v.background)
	ctx.Sub(v.bounds).Clear(bg)
	for _, index := range v.VisibleIndices() {
		cell := v.visible[index]
		cell.view.Render(ctx.Sub(v.bounds))
		v.applyOpacity(ctx.Buffer, cell.opacity)
	}
	v.indicator.Render(ctx.Sub(v.indicator.Bounds()))
}

func (v *SwipeView) handleKey(msg runtime.KeyMsg) runtime.HandleResult {
	switch msg.Key {
	case terminal.KeyDown, terminal.KeyPageDown:
		v.pageBy(1)
		return runtime.Handled()
	case terminal.KeyUp, terminal.KeyPageUp:
		v.pageBy(-1)
		return runtime.Handled()
	case terminal.KeyHome:
		v.pageTo(0)
		return runtime.Handled()
	case terminal.KeyEnd:
		v.pageTo(v.cellCount() - 1)
		return runtime.Handled()
	case terminal.KeyEnter:
		if v.hasCurrent && v.observer != nil {
			v.observer.CellSelected(v.current)
		}
		return runtime.Handled()
	case terminal.KeyRune:
		switch msg.Rune {
		case 'j':
			v.pageBy(1)
			return runtime.Handled()
		case 'k':
			v.pageBy(-1)
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

func (v *SwipeView) handleMouse(msg runtime.MouseMsg) runtime.HandleResult {
	if !v.bounds.Contains(msg.X, msg.Y) {
		return runtime.Unhandled()
	}
	step := wheelStepFraction * float64(v.extent.Extent)
	switch msg.Button {
	case terminal.MouseWheelDown:
		v.dragBy(step)
		return runtime.Handled()
	case terminal.MouseWheelUp:
		v.dragBy(-step)
		return runtime.Handled()
	case terminal.MouseLeft:
		if msg.Action == terminal.MousePress && v.hasCurrent && v.observer != nil {
			v.observer.CellSelected(v.current)
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// dragBy applies interactive scrolling: the indicator flashes, any
// in-flight snap is abandoned, and the idle snap timer restarts.
func (v *SwipeView) dragBy(delta float64) {
	v.snapping = false
	v.viewport.ScrollBy(delta)
	v.spring.Snap(v.viewport.Offset())
	v.indicator.Flash()
	gen := v.wheelIdle.Arm()
	v.Services.After(wheelIdleDelay, runtime.UserMsg{Data: swipeIdleMsg{gen: gen}})
	v.refresh()
	v.Invalidate()
}

// pageBy moves the spring target by whole pages from the tracked
// current page.
func (v *SwipeView) pageBy(delta int) {
	v.pageTo(v.current + delta)
}

func (v *SwipeView) pageTo(index int) {
	count := v.cellCount()
	if count <= 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}
	v.wheelIdle.Cancel()
	v.spring.SetTarget(v.extent.OffsetForIndex(index))
	v.snapping = true
	v.indicator.Flash()
	v.Invalidate()
}

// snapToRest springs to the resting position of the top visible cell.
func (v *SwipeView) snapToRest() {
	percent := v.percent()
	visible := scroll.VisibleIndices(v.cellCount(), percent)
	index, ok := scroll.SnapIndex(visible)
	if !ok {
		return
	}
	v.spring.SetTarget(v.extent.OffsetForIndex(index))
	v.snapping = true
	v.Invalidate()
}

// stepSnap advances an in-flight snap one frame. It reports whether
// the spring moved the viewport.
func (v *SwipeView) stepSnap() bool {
	if !v.snapping {
		return false
	}
	v.viewport.SetOffset(v.spring.Step())
	v.refresh()
	if v.spring.Settled() {
		v.snapping = false
	}
	v.Invalidate()
	return true
}

// refresh reconciles the visible set against the scroll position:
// cells leaving the set recycle into the pool, cells entering come
// from the data source, the tracked current page drifts no further
// than the visible bounds force it, and fade events fire.
func (v *SwipeView) refresh() {
	count := v.cellCount()
	percent := v.percent()
	want := scroll.VisibleIndices(count, percent)

	wanted := make(map[int]bool, len(want))
	for _, i := range want {
		wanted[i] = true
	}
	for index, cell := range v.visible {
		if !wanted[index] {
			v.retire(index, cell)
		}
	}
	for _, index := range want {
		if _, ok := v.visible[index]; ok {
			continue
		}
		v.materialize(index)
	}

	if len(want) > 0 {
		lo := want[0]
		hi := want[len(want)-1]
		next := scroll.ClosestIndex(v.current, lo, hi)
		if !v.hasCurrent {
			next = lo
		}
		if !v.hasCurrent || next != v.current {
			v.current = next
			v.hasCurrent = true
			v.currentSig.Set(next)
			v.indicator.SetCurrentPage(next)
			if v.observer != nil {
				v.observer.CellDisplayed(next)
			}
		}
	}

	v.applyFades(percent, count, want)
}

// applyFades recomputes per-cell cross-fade opacity and emits the
// transition and fade observer events.
func (v *SwipeView) applyFades(percent float64, count int, want []int) {
	if len(want) > 1 && v.observer != nil {
		v.observer.Transition(want[0], want[len(want)-1], scroll.TransitionPercent(percent))
	}
	for _, index := range want {
		cell := v.visible[index]
		if cell == nil {
			continue
		}
		cell.opacity = 1
		if index == v.current {
			if value, ok := scroll.FadeOutPercent(v.current, percent); ok {
				cell.opacity = 1 - abs(value)
				if v.observer != nil {
					v.observer.FadeOut(index, value)
				}
			}
			continue
		}
		if value, ok := scroll.FadeInPercent(index, v.current, percent); ok {
			cell.opacity = abs(value)
			if v.observer != nil {
				v.observer.FadeIn(index, value)
			}
		}
	}
}

// materialize builds the cell for index, reusing a pooled widget when
// one is available, and wires it into the live tree.
func (v *SwipeView) materialize(index int) {
	if v.dataSource == nil {
		return
	}
	var reuse runtime.Widget
	if n := len(v.pool); n > 0 {
		reuse = v.pool[n-1]
		v.pool = v.pool[:n-1]
	}
	view := v.dataSource.CellForIndex(index, reuse)
	if view == nil {
		return
	}
	runtime.BindTree(view, v.Services)
	view.Layout(v.bounds)
	if v.mounted {
		runtime.MountTree(view)
	}
	v.visible[index] = &swipeCell{view: view, opacity: 1}
}

// retire detaches a live cell and returns its widget to the two-slot
// reuse pool.
func (v *SwipeView) retire(index int, cell *swipeCell) {
	delete(v.visible, index)
	if v.mounted {
		runtime.UnmountTree(cell.view)
	}
	runtime.UnbindTree(cell.view)
	if len(v.pool) < 2 {
		v.pool = append(v.pool, cell.view)
	}
}

// forward delivers a message to the live cells in ascending order.
func (v *SwipeView) forward(msg runtime.Message) bool {
	handled := false
	for _, index := range v.VisibleIndices() {
		if v.visible[index].view.HandleMessage(msg).Handled {
			handled = true
		}
	}
	return handled
}

// applyOpacity blends the rendered cell region toward the background.
func (v *SwipeView) applyOpacity(buf *runtime.Buffer, opacity float64) {
	if opacity >= 1 || buf == nil {
		return
	}
	for y := v.bounds.Y; y < v.bounds.Y+v.bounds.Height; y++ {
		for x := v.bounds.X; x < v.bounds.X+v.bounds.Width; x++ {
			c := buf.Get(x, y)
			faded := c.Style.Faded(opacity, v.background)
			if faded != c.Style {
				buf.Set(x, y, c.Rune, faded)
			}
		}
	}
}

// syncContent refreshes the content extent and indicator page count.
func (v *SwipeView) syncContent() {
	v.viewport.SetContentExtent(v.extent.TotalExtent())
	v.indicator.SetNumberOfPages(v.cellCount())
}

// percent is the scroll position in page units.
func (v *SwipeView) percent() float64 {
	return scroll.PercentIndex(v.viewport.Offset(), v.extent.Extent)
}

func (v *SwipeView) cellCount() int {
	if v == nil || v.dataSource == nil {
		return 0
	}
	count := v.dataSource.CellCount()
	if count < 0 {
		return 0
	}
	return count
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

var (
	_ runtime.Widget        = (*SwipeView)(nil)
	_ runtime.Focusable     = (*SwipeView)(nil)
	_ runtime.ChildProvider = (*SwipeView)(nil)
	_ runtime.Lifecycle     = (*SwipeView)(nil)
	_ runtime.Bindable      = (*SwipeView)(nil)
)
