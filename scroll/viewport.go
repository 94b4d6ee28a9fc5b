// Package scroll provides viewport and paging geometry primitives.
package scroll

// Viewport tracks a continuous vertical offset over paged content.
// Offsets are fractional so interactive scrolling can sit between two
// resting positions; the owner converts them to cell units.
type Viewport struct {
	offset        float64
	contentExtent int
	viewExtent    int
	onChange      func(offset float64)
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	return &Viewport{}
}

// SetContentExtent updates the content height and re-clamps the offset.
func (v *Viewport) SetContentExtent(extent int) {
	if v == nil {
		return
	}
	if extent < 0 {
		extent = 0
	}
	v.contentExtent = extent
	v.SetOffset(v.offset)
}

// ContentExtent returns the content height.
func (v *Viewport) ContentExtent() int {
	if v == nil {
		return 0
	}
	return v.contentExtent
}

// SetViewExtent updates the view height and re-clamps the offset.
func (v *Viewport) SetViewExtent(extent int) {
	if v == nil {
		return
	}
	if extent < 0 {
		extent = 0
	}
	v.viewExtent = extent
	v.SetOffset(v.offset)
}

// ViewExtent returns the view height.
func (v *Viewport) ViewExtent() int {
	if v == nil {
		return 0
	}
	return v.viewExtent
}

// Offset returns the current offset.
func (v *Viewport) Offset() float64 {
	if v == nil {
		return 0
	}
	return v.offset
}

// MaxOffset returns the maximum scrollable offset.
func (v *Viewport) MaxOffset() float64 {
	if v == nil {
		return 0
	}
	max := float64(v.contentExtent - v.viewExtent)
	if max < 0 {
		return 0
	}
	return max
}

// SetOnChange sets a callback invoked when the offset moves.
func (v *Viewport) SetOnChange(fn func(offset float64)) {
	if v == nil {
		return
	}
	v.onChange = fn
}

// SetOffset sets the offset, clamped to the scrollable range.
func (v *Viewport) SetOffset(offset float64) {
	if v == nil {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if max := v.MaxOffset(); offset > max {
		offset = max
	}
	if offset == v.offset {
		return
	}
	v.offset = offset
	if v.onChange != nil {
		v.onChange(v.offset)
	}
}

// ScrollBy adjusts the offset by a delta.
func (v *Viewport) ScrollBy(delta float64) {
	if v == nil {
		return
	}
	v.SetOffset(v.offset + delta)
}
