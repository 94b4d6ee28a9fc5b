// Package backend defines the cell model and driver interface that
// terminal backends implement.
package backend

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is an optional 24-bit color. The zero value means "terminal
// default" and survives blending unchanged.
type Color struct {
	set     bool
	R, G, B uint8
}

// RGB creates a set color from components.
func RGB(r, g, b uint8) Color {
	return Color{set: true, R: r, G: g, B: b}
}

// IsSet reports whether the color overrides the terminal default.
func (c Color) IsSet() bool {
	return c.set
}

// Blend interpolates from c toward other by t in [0, 1].
// Unset colors pass through: blending into the terminal default keeps
// whichever side is set.
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 || !other.set {
		return c
	}
	if t >= 1 || !c.set {
		return other
	}
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	to := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	mixed := from.BlendRgb(to, t).Clamped()
	return RGB(uint8(mixed.R*255+0.5), uint8(mixed.G*255+0.5), uint8(mixed.B*255+0.5))
}

// AttrMask holds text attributes.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrUnderline
	AttrReverse
	AttrDim
)

// Style describes how a cell is drawn.
type Style struct {
	FG    Color
	BG    Color
	Attrs AttrMask
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{}
}

// Foreground returns a copy with the foreground color set.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns a copy with the background color set.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns a copy with bold toggled.
func (s Style) Bold(on bool) Style {
	return s.attr(AttrBold, on)
}

// Underline returns a copy with underline toggled.
func (s Style) Underline(on bool) Style {
	return s.attr(AttrUnderline, on)
}

// Reverse returns a copy with reverse video toggled.
func (s Style) Reverse(on bool) Style {
	return s.attr(AttrReverse, on)
}

// Dim returns a copy with dim toggled.
func (s Style) Dim(on bool) Style {
	return s.attr(AttrDim, on)
}

func (s Style) attr(mask AttrMask, on bool) Style {
	if on {
		s.Attrs |= mask
	} else {
		s.Attrs &^= mask
	}
	return s
}

// Faded returns the style with its foreground blended toward bg by
// 1-opacity. Opacity 1 is the style unchanged; opacity 0 disappears
// into the background.
func (s Style) Faded(opacity float64, bg Color) Style {
	if opacity >= 1 {
		return s
	}
	if opacity < 0 {
		opacity = 0
	}
	s.FG = s.FG.Blend(bg, 1-opacity)
	if s.BG.IsSet() {
		s.BG = s.BG.Blend(bg, 1-opacity)
	}
	return s
}
