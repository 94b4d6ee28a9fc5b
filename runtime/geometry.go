package runtime

// Size holds a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersection returns the overlapping region of two rectangles, or a
// zero Rect when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Constraints bound the sizes a widget may choose during measurement.
// A zero max dimension means unbounded.
type Constraints struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
}

// Tight returns constraints that force an exact size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MinHeight: size.Height,
		MaxWidth:  size.Width,
		MaxHeight: size.Height,
	}
}

// MinSize returns the smallest allowed size.
func (c Constraints) MinSize() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// MaxSize returns the largest allowed size.
func (c Constraints) MaxSize() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Constrain clamps a size into the constraint bounds.
func (c Constraints) Constrain(size Size) Size {
	if size.Width < c.MinWidth {
		size.Width = c.MinWidth
	}
	if c.MaxWidth > 0 && size.Width > c.MaxWidth {
		size.Width = c.MaxWidth
	}
	if size.Height < c.MinHeight {
		size.Height = c.MinHeight
	}
	if c.MaxHeight > 0 && size.Height > c.MaxHeight {
		size.Height = c.MaxHeight
	}
	return size
}
