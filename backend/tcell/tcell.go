// Package tcell implements the production terminal backend.
package tcell

import (
	"fmt"

	tc "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/plush-ui/backend"
	"github.com/odvcencio/plush-ui/terminal"
)

// Backend drives a real terminal through tcell.
type Backend struct {
	screen tc.Screen
	mouse  bool
	paste  bool
}

// Option configures the backend.
type Option func(*Backend)

// WithMouse enables mouse reporting.
func WithMouse() Option {
	return func(b *Backend) { b.mouse = true }
}

// WithPaste enables bracketed paste.
func WithPaste() Option {
	return func(b *Backend) { b.paste = true }
}

// New creates a tcell backend.
func New(opts ...Option) (*Backend, error) {
	screen, err := tc.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	b := &Backend{screen: screen, mouse: true, paste: true}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Init initializes the terminal.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	if b.mouse {
		b.screen.EnableMouse()
	}
	if b.paste {
		b.screen.EnablePaste()
	}
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// SetContent writes a cell.
func (b *Backend) SetContent(x, y int, primary rune, combining []rune, style backend.Style) {
	b.screen.SetContent(x, y, primary, combining, toTcellStyle(style))
}

// SetRow writes a run of cells on one row.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		b.screen.SetContent(startX+i, y, cell.Rune, nil, toTcellStyle(cell.Style))
	}
}

// Show flushes pending output.
func (b *Backend) Show() {
	b.screen.Show()
}

// HideCursor hides the hardware cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent blocks for the next input event.
// Returns nil for events the runtime does not consume.
func (b *Backend) PollEvent() terminal.Event {
	switch ev := b.screen.PollEvent().(type) {
	case *tc.EventKey:
		return toKeyEvent(ev)
	case *tc.EventResize:
		w, h := ev.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tc.EventMouse:
		return toMouseEvent(ev)
	case *tc.EventPaste:
		// Bracketed paste arrives as delimiters with rune keys between;
		// the runes flow through as ordinary key events.
		return nil
	}
	return nil
}

func toTcellStyle(style backend.Style) tc.Style {
	out := tc.StyleDefault
	if style.FG.IsSet() {
		out = out.Foreground(tc.NewRGBColor(int32(style.FG.R), int32(style.FG.G), int32(style.FG.B)))
	}
	if style.BG.IsSet() {
		out = out.Background(tc.NewRGBColor(int32(style.BG.R), int32(style.BG.G), int32(style.BG.B)))
	}
	out = out.Bold(style.Attrs&backend.AttrBold != 0)
	out = out.Underline(style.Attrs&backend.AttrUnderline != 0)
	out = out.Reverse(style.Attrs&backend.AttrReverse != 0)
	out = out.Dim(style.Attrs&backend.AttrDim != 0)
	return out
}

func toKeyEvent(ev *tc.EventKey) terminal.KeyEvent {
	mods := ev.Modifiers()
	out := terminal.KeyEvent{
		Alt:   mods&tc.ModAlt != 0,
		Ctrl:  mods&tc.ModCtrl != 0,
		Shift: mods&tc.ModShift != 0,
	}
	switch ev.Key() {
	case tc.KeyRune:
		out.Key = terminal.KeyRune
		out.Rune = ev.Rune()
	case tc.KeyEnter:
		out.Key = terminal.KeyEnter
	case tc.KeyEscape:
		out.Key = terminal.KeyEscape
	case tc.KeyTab:
		out.Key = terminal.KeyTab
	case tc.KeyBacktab:
		out.Key = terminal.KeyBacktab
	case tc.KeyBackspace, tc.KeyBackspace2:
		out.Key = terminal.KeyBackspace
	case tc.KeyDelete:
		out.Key = terminal.KeyDelete
	case tc.KeyUp:
		out.Key = terminal.KeyUp
	case tc.KeyDown:
		out.Key = terminal.KeyDown
	case tc.KeyLeft:
		out.Key = terminal.KeyLeft
	case tc.KeyRight:
		out.Key = terminal.KeyRight
	case tc.KeyHome:
		out.Key = terminal.KeyHome
	case tc.KeyEnd:
		out.Key = terminal.KeyEnd
	case tc.KeyPgUp:
		out.Key = terminal.KeyPageUp
	case tc.KeyPgDn:
		out.Key = terminal.KeyPageDown
	}
	return out
}

func toMouseEvent(ev *tc.EventMouse) terminal.MouseEvent {
	x, y := ev.Position()
	mods := ev.Modifiers()
	out := terminal.MouseEvent{
		X:     x,
		Y:     y,
		Alt:   mods&tc.ModAlt != 0,
		Ctrl:  mods&tc.ModCtrl != 0,
		Shift: mods&tc.ModShift != 0,
	}
	buttons := ev.Buttons()
	switch {
	case buttons&tc.WheelUp != 0:
		out.Button = terminal.MouseWheelUp
	case buttons&tc.WheelDown != 0:
		out.Button = terminal.MouseWheelDown
	case buttons&tc.Button1 != 0:
		out.Button = terminal.MouseLeft
	case buttons&tc.Button2 != 0:
		out.Button = terminal.MouseMiddle
	case buttons&tc.Button3 != 0:
		out.Button = terminal.MouseRight
	default:
		out.Button = terminal.MouseNone
		out.Action = terminal.MouseRelease
		return out
	}
	if out.Button == terminal.MouseWheelUp || out.Button == terminal.MouseWheelDown {
		out.Action = terminal.MousePress
	}
	return out
}

var (
	_ backend.Backend   = (*Backend)(nil)
	_ backend.RowWriter = (*Backend)(nil)
)
