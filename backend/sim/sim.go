// Package sim implements an in-memory backend for tests and scripted
// interaction with a widget tree.
package sim

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/plush-ui/backend"
	"github.com/odvcencio/plush-ui/terminal"
)

// Backend renders into an in-memory grid and replays scripted events.
type Backend struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   []backend.Cell
	shows   int
	events  chan terminal.Event
	done    chan struct{}
	closed  bool
	entropy *rand.Rand
}

// New creates a simulation backend with the given dimensions.
func New(width, height int) *Backend {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &Backend{
		width:   width,
		height:  height,
		cells:   blankCells(width * height),
		events:  make(chan terminal.Event, 64),
		done:    make(chan struct{}),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Init implements backend.Backend.
func (b *Backend) Init() error {
	return nil
}

// Fini stops event delivery.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
}

// Size returns the grid dimensions.
func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// SetContent writes a cell into the grid.
func (b *Backend) SetContent(x, y int, primary rune, combining []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = backend.Cell{Rune: primary, Style: style}
}

// SetRow writes a run of cells on one row.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return
	}
	for i, cell := range cells {
		x := startX + i
		if x < 0 || x >= b.width {
			continue
		}
		b.cells[y*b.width+x] = cell
	}
}

// Show counts flushes; content is already live in the grid.
func (b *Backend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() {}

// PollEvent blocks until a scripted event arrives or Fini is called.
func (b *Backend) PollEvent() terminal.Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return nil
	}
}

// Send queues a scripted event. Returns false once the backend is done.
func (b *Backend) Send(ev terminal.Event) bool {
	if ev == nil {
		return false
	}
	select {
	case b.events <- ev:
		return true
	case <-b.done:
		return false
	}
}

// SendKey queues a key press.
func (b *Backend) SendKey(key terminal.Key, r rune) bool {
	return b.Send(terminal.KeyEvent{Key: key, Rune: r})
}

// SendWheel queues a mouse wheel tick at a position.
func (b *Backend) SendWheel(x, y int, up bool) bool {
	button := terminal.MouseWheelDown
	if up {
		button = terminal.MouseWheelUp
	}
	return b.Send(terminal.MouseEvent{X: x, Y: y, Button: button, Action: terminal.MousePress})
}

// Resize changes the grid size and queues a resize event.
func (b *Backend) Resize(width, height int) {
	b.mu.Lock()
	if width > 0 && height > 0 && (width != b.width || height != b.height) {
		b.width = width
		b.height = height
		b.cells = blankCells(width * height)
	}
	b.mu.Unlock()
	b.Send(terminal.ResizeEvent{Width: width, Height: height})
}

// CellAt returns the grid cell at (x, y).
func (b *Backend) CellAt(x, y int) backend.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return backend.Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// ShowCount returns how many times Show has been called.
func (b *Backend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Snapshot captures the rendered text for assertions and transcripts.
type Snapshot struct {
	ID     string
	Taken  time.Time
	Width  int
	Height int
	Text   string
}

// Snapshot captures the current grid contents.
func (b *Backend) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.width; x++ {
			r := b.cells[y*b.width+x].Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
	}
	return Snapshot{
		ID:     ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		Taken:  now,
		Width:  b.width,
		Height: b.height,
		Text:   sb.String(),
	}
}

func blankCells(n int) []backend.Cell {
	cells := make([]backend.Cell, n)
	for i := range cells {
		cells[i].Rune = ' '
	}
	return cells
}

var (
	_ backend.Backend   = (*Backend)(nil)
	_ backend.RowWriter = (*Backend)(nil)
)
