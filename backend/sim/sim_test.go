package sim

import (
	"strings"
	"testing"

	"github.com/odvcencio/plush-ui/backend"
	"github.com/odvcencio/plush-ui/terminal"
)

func TestSimSetContentAndSnapshot(t *testing.T) {
	b := New(8, 2)
	b.SetContent(0, 0, 'h', nil, backend.DefaultStyle())
	b.SetContent(1, 0, 'i', nil, backend.DefaultStyle())
	b.Show()

	if got := b.CellAt(0, 0).Rune; got != 'h' {
		t.Fatalf("cell = %q, want 'h'", got)
	}
	if got := b.ShowCount(); got != 1 {
		t.Fatalf("show count = %d, want 1", got)
	}

	snap := b.Snapshot()
	if snap.Width != 8 || snap.Height != 2 {
		t.Fatalf("snapshot size = %dx%d, want 8x2", snap.Width, snap.Height)
	}
	if !strings.HasPrefix(snap.Text, "hi") {
		t.Fatalf("snapshot text = %q, want to start with \"hi\"", snap.Text)
	}
	if snap.ID == "" {
		t.Fatal("snapshot should carry an id")
	}
	if other := b.Snapshot(); other.ID == snap.ID {
		t.Fatal("snapshot ids should be unique")
	}
}

func TestSimSetRow(t *testing.T) {
	b := New(4, 1)
	b.SetRow(0, 1, []backend.Cell{{Rune: 'a'}, {Rune: 'b'}, {Rune: 'c'}, {Rune: 'd'}})
	if b.CellAt(1, 0).Rune != 'a' || b.CellAt(3, 0).Rune != 'c' {
		t.Fatal("row write misplaced cells")
	}
	// The overflowing cell clips.
	if b.CellAt(0, 0).Rune != ' ' {
		t.Fatal("row write touched cells before startX")
	}
}

func TestSimScriptedEvents(t *testing.T) {
	b := New(10, 4)
	if !b.SendKey(terminal.KeyEnter, 0) {
		t.Fatal("send before Fini should succeed")
	}
	ev := b.PollEvent()
	key, ok := ev.(terminal.KeyEvent)
	if !ok || key.Key != terminal.KeyEnter {
		t.Fatalf("event = %#v, want enter key", ev)
	}

	b.SendWheel(3, 2, false)
	mouse, ok := b.PollEvent().(terminal.MouseEvent)
	if !ok || mouse.Button != terminal.MouseWheelDown || mouse.X != 3 {
		t.Fatalf("event = %#v, want wheel down at x=3", mouse)
	}
}

func TestSimFiniUnblocksPoll(t *testing.T) {
	b := New(10, 4)
	done := make(chan terminal.Event, 1)
	go func() {
		done <- b.PollEvent()
	}()
	b.Fini()
	if ev := <-done; ev != nil {
		t.Fatalf("poll after fini = %#v, want nil", ev)
	}
	if b.SendKey(terminal.KeyEnter, 0) {
		t.Fatal("send after fini should fail")
	}
}

func TestSimResize(t *testing.T) {
	b := New(4, 2)
	b.Resize(6, 3)
	if w, h := b.Size(); w != 6 || h != 3 {
		t.Fatalf("size = %dx%d, want 6x3", w, h)
	}
	resize, ok := b.PollEvent().(terminal.ResizeEvent)
	if !ok || resize.Width != 6 || resize.Height != 3 {
		t.Fatalf("event = %#v, want resize 6x3", resize)
	}
}
