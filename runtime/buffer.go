package runtime

import "github.com/odvcencio/plush-ui/backend"

// Cell represents a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is a 2D grid of cells widgets render into. Changed cells are
// tracked per generation so the app can flush partial redraws.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirtyStamp []uint32
	dirtyGen   uint32
	dirtyAll   bool
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		cells:      make([]Cell, w*h),
		dirtyStamp: make([]uint32, w*h),
		dirtyGen:   1,
		width:      w,
		height:     h,
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, preserving overlapping content.
// The whole buffer is marked dirty afterwards.
func (b *Buffer) Resize(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	next := make([]Cell, w*h)
	minW := min(w, b.width)
	minH := min(h, b.height)
	for y := 0; y < minH; y++ {
		copy(next[y*w:y*w+minW], b.cells[y*b.width:y*b.width+minW])
	}
	b.cells = next
	b.dirtyStamp = make([]uint32, w*h)
	b.dirtyGen = 1
	b.width = w
	b.height = h
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces and the default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at (x, y), or a blank cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at (x, y). Out-of-bounds writes are
// dropped; unchanged cells stay clean.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	old := b.cells[idx]
	if old.Rune != r || old.Style != s {
		b.cells[idx] = Cell{Rune: r, Style: s}
		b.markDirty(x, y, idx)
	}
}

// SetString writes a string starting at (x, y), clipped to the buffer.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) {
	if y < 0 || y >= b.height {
		return
	}
	px := x
	for _, r := range s {
		if px >= b.width {
			break
		}
		if px >= 0 {
			b.Set(px, y, r, style)
		}
		px++
	}
}

// Fill fills a rectangle with a rune and style, clipped to the buffer.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	clipped := r.Intersection(Rect{0, 0, b.width, b.height})
	if clipped.Empty() {
		return
	}
	cell := Cell{Rune: ch, Style: s}
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		idx := y*b.width + clipped.X
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			if b.cells[idx] != cell {
				b.cells[idx] = cell
				b.markDirty(x, y, idx)
			}
			idx++
		}
	}
}

// Cells returns the underlying row-major cell slice.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

func (b *Buffer) markDirty(x, y, idx int) {
	if b.dirtyAll || b.dirtyStamp[idx] == b.dirtyGen {
		return
	}
	b.dirtyStamp[idx] = b.dirtyGen
	b.dirtyCount++
	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	if x < b.dirtyRect.X {
		b.dirtyRect.Width += b.dirtyRect.X - x
		b.dirtyRect.X = x
	} else if x >= b.dirtyRect.X+b.dirtyRect.Width {
		b.dirtyRect.Width = x - b.dirtyRect.X + 1
	}
	if y < b.dirtyRect.Y {
		b.dirtyRect.Height += b.dirtyRect.Y - y
		b.dirtyRect.Y = y
	} else if y >= b.dirtyRect.Y+b.dirtyRect.Height {
		b.dirtyRect.Height = y - b.dirtyRect.Y + 1
	}
}

// MarkAllDirty marks the entire buffer as changed.
func (b *Buffer) MarkAllDirty() {
	b.dirtyAll = true
	b.dirtyCount = b.width * b.height
	b.dirtyRect = Rect{0, 0, b.width, b.height}
}

// ClearDirty resets change tracking for the next frame.
func (b *Buffer) ClearDirty() {
	b.dirtyAll = false
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
	b.dirtyGen++
	if b.dirtyGen == 0 {
		clear(b.dirtyStamp)
		b.dirtyGen = 1
	}
}

// IsDirty reports whether any cell changed since the last flush.
func (b *Buffer) IsDirty() bool {
	return b.dirtyAll || b.dirtyCount > 0
}

// DirtyCount returns the number of changed cells.
func (b *Buffer) DirtyCount() int {
	if b.dirtyAll {
		return b.width * b.height
	}
	return b.dirtyCount
}

// DirtyRect returns the bounding box of changed cells.
func (b *Buffer) DirtyRect() Rect {
	if b.dirtyAll {
		return Rect{0, 0, b.width, b.height}
	}
	return b.dirtyRect
}

// ForEachDirtyCell calls fn for every changed cell.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyAll {
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				fn(x, y, b.cells[y*b.width+x])
			}
		}
		return
	}
	if b.dirtyCount == 0 {
		return
	}
	rect := b.dirtyRect
	yEnd := min(b.height, rect.Y+rect.Height)
	xEnd := min(b.width, rect.X+rect.Width)
	for y := rect.Y; y < yEnd; y++ {
		for x := rect.X; x < xEnd; x++ {
			idx := y*b.width + x
			if b.dirtyStamp[idx] == b.dirtyGen {
				fn(x, y, b.cells[idx])
			}
		}
	}
}

// ForEachDirtySpan calls fn for each contiguous run of changed cells
// per row, for backends with a row fast path.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	if b.dirtyAll {
		for y := 0; y < b.height; y++ {
			fn(y, 0, b.width)
		}
		return
	}
	if b.dirtyCount == 0 {
		return
	}
	rect := b.dirtyRect
	yEnd := min(b.height, rect.Y+rect.Height)
	xEnd := min(b.width, rect.X+rect.Width)
	for y := rect.Y; y < yEnd; y++ {
		row := y * b.width
		x := rect.X
		for x < xEnd {
			if b.dirtyStamp[row+x] != b.dirtyGen {
				x++
				continue
			}
			start := x
			for x < xEnd && b.dirtyStamp[row+x] == b.dirtyGen {
				x++
			}
			fn(y, start, x)
		}
	}
}
