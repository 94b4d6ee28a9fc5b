package backend

import "github.com/odvcencio/plush-ui/terminal"

// Cell is one character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend drives a terminal or a simulation of one.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style Style)
	Show()
	HideCursor()
	PollEvent() terminal.Event
}

// RowWriter is an optional fast path for bulk row updates.
type RowWriter interface {
	SetRow(y int, startX int, cells []Cell)
}

// RectWriter is an optional fast path for bulk rectangle updates.
// The cells slice is row-major with width*height entries.
type RectWriter interface {
	SetRect(x, y, width, height int, cells []Cell)
}
