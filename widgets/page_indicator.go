package widgets

import (
	"math"
	"time"

	"github.com/odvcencio/plush-ui/anim"
	"github.com/odvcencio/plush-ui/backend"
	"github.com/odvcencio/plush-ui/runtime"
)

const (
	// indicatorMoveDuration is how long the highlighted bar takes to
	// glide to a new page position, and how long the idle fade takes.
	indicatorMoveDuration = 300 * time.Millisecond
	// indicatorIdleDelay is how long the indicator stays visible after
	// the last page change before fading out.
	indicatorIdleDelay = 2 * time.Second
)

// indicatorIdleMsg is delivered when the idle-fade timer expires.
type indicatorIdleMsg struct {
	gen uint64
}

// span is a vertical extent in fractional rows.
type span struct {
	start  float64
	extent float64
}

func (s span) end() float64 {
	return s.start + s.extent
}

// subtractSpan removes the part of bar covered by cut. The result is
// the zero, one, or two remainder pieces: nothing when the bar is
// fully covered, the original bar when they do not overlap.
func subtractSpan(bar, cut span) []span {
	if bar.extent <= 0 {
		return nil
	}
	if cut.extent <= 0 || cut.end() <= bar.start || cut.start >= bar.end() {
		return []span{bar}
	}
	var pieces []span
	if cut.start > bar.start {
		pieces = append(pieces, span{start: bar.start, extent: cut.start - bar.start})
	}
	if cut.end() < bar.end() {
		pieces = append(pieces, span{start: cut.end(), extent: bar.end() - cut.end()})
	}
	return pieces
}

// PageIndicator is a vertical bar-per-page position indicator. The
// highlighted bar glides to the current page and the whole control
// flashes visible on page changes, fading out again after an idle
// delay.
type PageIndicator struct {
	Component

	numberOfPages      int
	currentPage        int
	previewPage        int
	previewSet         bool
	hidesForSinglePage bool

	barStyle       backend.Style
	highlightStyle backend.Style
	background     backend.Color
	hasBarStyle    bool
	hasHighlight   bool

	inset              int
	spacing            int
	minHighlightExtent int
	barRune            rune

	opacity      float64
	hidden       bool
	highlightTop float64
	move         anim.Transition
	fade         anim.Transition
	idle         anim.IdleTimer
	lastTick     time.Time
}

// NewPageIndicator creates an indicator with no pages.
func NewPageIndicator() *PageIndicator {
	return &PageIndicator{
		inset:              1,
		spacing:            1,
		minHighlightExtent: 2,
		barRune:            '┃',
		opacity:            1,
		hidden:             true,
	}
}

// NumberOfPages returns the page count.
func (p *PageIndicator) NumberOfPages() int {
	if p == nil {
		return 0
	}
	return p.numberOfPages
}

// SetNumberOfPages updates the page count, recomputes bar geometry,
// and re-clamps the current page.
func (p *PageIndicator) SetNumberOfPages(n int) {
	if p == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	p.numberOfPages = n
	p.currentPage = p.clampPage(p.currentPage)
	p.syncHighlight(false)
	p.Invalidate()
}

// CurrentPage returns the clamped current page.
func (p *PageIndicator) CurrentPage() int {
	if p == nil {
		return 0
	}
	return p.clampPage(p.currentPage)
}

// SetCurrentPage clamps and stores the page. A changed value animates
// the highlighted bar to its new position; either way the control
// flashes visible and the idle-fade timer restarts.
func (p *PageIndicator) SetCurrentPage(page int) {
	if p == nil {
		return
	}
	clamped := p.clampPage(page)
	changed := clamped != p.currentPage
	p.currentPage = clamped
	if changed {
		p.syncHighlight(true)
	}
	p.Flash()
}

// PreviewPage returns the stored raw preview value, clamped on read.
func (p *PageIndicator) PreviewPage() int {
	if p == nil {
		return 0
	}
	return p.clampPage(p.previewPage)
}

// SetPreviewPage stores a raw page value for design-preview rendering.
// No animation or flash runs; the value clamps when read. While the
// widget has no bound app services, Render draws the preview page even
// though the control would otherwise be idle-hidden.
func (p *PageIndicator) SetPreviewPage(page int) {
	if p == nil {
		return
	}
	p.previewPage = page
	p.previewSet = true
	p.Invalidate()
}

// previewActive reports whether design-preview rendering applies: a
// preview page was set and no app services are bound.
func (p *PageIndicator) previewActive() bool {
	return p.previewSet && p.Services == (runtime.Services{})
}

// HidesForSinglePage returns the single-page auto-hide flag.
func (p *PageIndicator) HidesForSinglePage() bool {
	return p != nil && p.hidesForSinglePage
}

// SetHidesForSinglePage force-hides the control whenever the page
// count is one or less.
func (p *PageIndicator) SetHidesForSinglePage(hide bool) {
	if p == nil {
		return
	}
	p.hidesForSinglePage = hide
	p.Invalidate()
}

// SetBarStyle sets the normal bar style.
func (p *PageIndicator) SetBarStyle(style backend.Style) {
	if p == nil {
		return
	}
	p.barStyle = style
	p.hasBarStyle = true
	p.Invalidate()
}

// SetHighlightStyle sets the highlighted bar style.
func (p *PageIndicator) SetHighlightStyle(style backend.Style) {
	if p == nil {
		return
	}
	p.highlightStyle = style
	p.hasHighlight = true
	p.Invalidate()
}

// SetBackground sets the color fades blend toward.
func (p *PageIndicator) SetBackground(color backend.Color) {
	if p == nil {
		return
	}
	p.background = color
	p.Invalidate()
}

// SetMinHighlightExtent sets the minimum highlighted bar height in rows.
func (p *PageIndicator) SetMinHighlightExtent(rows int) {
	if p == nil || rows < 1 {
		return
	}
	p.minHighlightExtent = rows
	p.Invalidate()
}

// IsHidden reports whether the control currently draws nothing.
func (p *PageIndicator) IsHidden() bool {
	if p == nil {
		return true
	}
	if p.hidesForSinglePage && p.numberOfPages <= 1 {
		return true
	}
	return p.hidden
}

// Opacity returns the current flash opacity.
func (p *PageIndicator) Opacity() float64 {
	if p == nil {
		return 0
	}
	return p.opacity
}

// Flash shows the control immediately and restarts the idle-fade
// timer. Rapid calls debounce: only the latest timer delivery fades.
func (p *PageIndicator) Flash() {
	if p == nil {
		return
	}
	p.fade.Cancel()
	p.hidden = false
	p.opacity = 1
	gen := p.idle.Arm()
	p.Services.After(indicatorIdleDelay, runtime.UserMsg{Data: indicatorIdleMsg{gen: gen}})
	p.Invalidate()
}

// Measure asks for a single column spanning the available height.
func (p *PageIndicator) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: 1, Height: constraints.MaxHeight})
}

// Layout stores bounds and re-pins the highlighted bar.
func (p *PageIndicator) Layout(bounds runtime.Rect) {
	p.Base.Layout(bounds)
	p.syncHighlight(false)
}

// HandleMessage advances animations and consumes idle-timer deliveries.
func (p *PageIndicator) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if p == nil {
		return runtime.Unhandled()
	}
	switch m := msg.(type) {
	case runtime.TickMsg:
		return p.handleTick(m.Time)
	case runtime.UserMsg:
		if idle, ok := m.Data.(indicatorIdleMsg); ok {
			p.handleIdle(idle.gen)
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

func (p *PageIndicator) handleTick(now time.Time) runtime.HandleResult {
	if !p.move.Active() && !p.fade.Active() {
		p.lastTick = now
		return runtime.Unhandled()
	}
	dt := indicatorMoveDuration / 10
	if !p.lastTick.IsZero() && now.After(p.lastTick) {
		dt = now.Sub(p.lastTick)
	}
	p.lastTick = now
	if p.move.Active() {
		value, _ := p.move.Step(dt)
		p.highlightTop = value
	}
	if p.fade.Active() {
		value, _ := p.fade.Step(dt)
		p.opacity = value
	}
	p.Invalidate()
	return runtime.Handled()
}

// handleIdle starts the fade-out if the delivery is still the most
// recently armed one. The completion fixup hides the control and
// restores full opacity so the next flash starts opaque; running it
// late (after a superseding flash) is safe because Flash cancels any
// in-flight fade first.
func (p *PageIndicator) handleIdle(gen uint64) {
	if !p.idle.Live(gen) {
		return
	}
	p.fade.Start(p.opacity, 0, indicatorMoveDuration, func() {
		p.hidden = true
		p.opacity = 1
	})
	p.Invalidate()
}

// Render draws the bar set minus the highlighted zone, then the
// highlighted bar as an overlay.
func (p *PageIndicator) Render(ctx runtime.RenderContext) {
	if p == nil {
		return
	}
	preview := p.previewActive()
	if p.hidesForSinglePage && p.numberOfPages <= 1 {
		return
	}
	if p.hidden && !preview {
		return
	}
	bounds := p.bounds
	if bounds.Empty() || p.numberOfPages <= 0 {
		return
	}

	barStyle := p.barStyle
	if !p.hasBarStyle {
		barStyle = backend.DefaultStyle().Foreground(AccentColor).Dim(true)
	}
	highlightStyle := p.highlightStyle
	if !p.hasHighlight {
		highlightStyle = backend.DefaultStyle().Foreground(AccentColor).Bold(true)
	}
	barStyle = barStyle.Faded(p.opacity, p.background)
	highlightStyle = highlightStyle.Faded(p.opacity, p.background)

	highlight := p.highlightSpan()
	if preview {
		highlight = p.highlightSpanAt(p.barSpan(p.clampPage(p.previewPage)).start)
	}
	for i := 0; i < p.numberOfPages; i++ {
		for _, piece := range subtractSpan(p.barSpan(i), highlight) {
			p.fillSpan(ctx, piece, p.barRune, barStyle)
		}
	}
	p.fillSpan(ctx, highlight, p.barRune, highlightStyle)
}

// barExtent returns the natural per-bar height in fractional rows, or
// the whole track when the count or geometry degenerates.
func (p *PageIndicator) barExtent() float64 {
	track := float64(p.bounds.Height)
	n := p.numberOfPages
	if n <= 0 {
		return track
	}
	extent := (track - 2*float64(p.inset) - float64(p.spacing)*float64(n-1)) / float64(n)
	if extent <= 0 {
		return track
	}
	return extent
}

// barSpan returns bar i's natural span within the track.
func (p *PageIndicator) barSpan(i int) span {
	extent := p.barExtent()
	if extent >= float64(p.bounds.Height) {
		// Degenerate geometry falls back to whole-track sizing.
		return span{start: 0, extent: float64(p.bounds.Height)}
	}
	start := float64(p.inset) + float64(i)*(extent+float64(p.spacing))
	return span{start: start, extent: extent}
}

// highlightSpan returns the highlighted bar's current span, enlarged
// and re-centered when the natural bar height is under the minimum.
func (p *PageIndicator) highlightSpan() span {
	return p.highlightSpanAt(p.highlightTop)
}

func (p *PageIndicator) highlightSpanAt(top float64) span {
	extent := p.barExtent()
	s := span{start: top, extent: extent}
	if minExtent := float64(p.minHighlightExtent); extent < minExtent {
		s.start -= (minExtent - extent) / 2
		s.extent = minExtent
	}
	return s
}

func (p *PageIndicator) fillSpan(ctx runtime.RenderContext, s span, r rune, style backend.Style) {
	y0 := int(math.Round(s.start))
	y1 := int(math.Round(s.end()))
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		if y < 0 || y >= p.bounds.Height {
			continue
		}
		for x := 0; x < p.bounds.Width; x++ {
			ctx.Buffer.Set(p.bounds.X+x, p.bounds.Y+y, r, style)
		}
	}
}

// syncHighlight moves the highlighted bar to the current page,
// animated when the app is running and animate is set. Retargeting
// mid-move supersedes the previous move.
func (p *PageIndicator) syncHighlight(animate bool) {
	target := p.barSpan(p.clampPage(p.currentPage)).start
	if animate {
		p.move.Start(p.highlightTop, target, indicatorMoveDuration, func() {
			p.Invalidate()
		})
		return
	}
	p.move.Cancel()
	p.highlightTop = target
}

func (p *PageIndicator) clampPage(page int) int {
	if p.numberOfPages <= 0 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page >= p.numberOfPages {
		return p.numberOfPages - 1
	}
	return page
}

var _ runtime.Widget = (*PageIndicator)(nil)
