package runtime

import (
	"reflect"
	"testing"

	"github.com/odvcencio/plush-ui/backend"
)

func TestBufferSetAndGet(t *testing.T) {
	buf := NewBuffer(10, 4)
	style := backend.DefaultStyle().Bold(true)
	buf.Set(3, 2, 'x', style)

	if got := buf.Get(3, 2); got.Rune != 'x' || got.Style != style {
		t.Fatalf("cell = %+v, want 'x' bold", got)
	}
	if got := buf.Get(-1, 0); got.Rune != ' ' {
		t.Fatalf("out of bounds cell = %+v, want blank", got)
	}
	// Out-of-bounds writes are dropped.
	buf.Set(10, 0, 'y', style)
	buf.Set(0, 4, 'y', style)
}

func TestBufferDirtyTracking(t *testing.T) {
	buf := NewBuffer(10, 4)
	buf.ClearDirty()
	if buf.IsDirty() {
		t.Fatal("fresh buffer should be clean after ClearDirty")
	}

	buf.Set(2, 1, 'a', backend.DefaultStyle())
	buf.Set(5, 3, 'b', backend.DefaultStyle())
	if !buf.IsDirty() || buf.DirtyCount() != 2 {
		t.Fatalf("dirty count = %d, want 2", buf.DirtyCount())
	}
	if got := buf.DirtyRect(); got != (Rect{X: 2, Y: 1, Width: 4, Height: 3}) {
		t.Fatalf("dirty rect = %+v, want {2 1 4 3}", got)
	}

	// Rewriting the same content stays clean.
	buf.ClearDirty()
	buf.Set(2, 1, 'a', backend.DefaultStyle())
	if buf.IsDirty() {
		t.Fatal("unchanged write should not dirty the buffer")
	}
}

func TestBufferForEachDirtyCell(t *testing.T) {
	buf := NewBuffer(8, 3)
	buf.ClearDirty()
	buf.Set(1, 0, 'a', backend.DefaultStyle())
	buf.Set(2, 0, 'b', backend.DefaultStyle())
	buf.Set(6, 2, 'c', backend.DefaultStyle())

	var seen []rune
	buf.ForEachDirtyCell(func(x, y int, cell Cell) {
		seen = append(seen, cell.Rune)
	})
	if !reflect.DeepEqual(seen, []rune{'a', 'b', 'c'}) {
		t.Fatalf("dirty cells = %q, want abc", string(seen))
	}
}

func TestBufferForEachDirtySpan(t *testing.T) {
	buf := NewBuffer(8, 3)
	buf.ClearDirty()
	buf.SetString(1, 1, "hi", backend.DefaultStyle())
	buf.Set(5, 1, '!', backend.DefaultStyle())

	type spanHit struct{ y, start, end int }
	var spans []spanHit
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		spans = append(spans, spanHit{y, startX, endX})
	})
	want := []spanHit{{1, 1, 3}, {1, 5, 6}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %+v, want %+v", spans, want)
	}
}

func TestBufferMarkAllDirty(t *testing.T) {
	buf := NewBuffer(4, 2)
	buf.ClearDirty()
	buf.MarkAllDirty()
	if got := buf.DirtyCount(); got != 8 {
		t.Fatalf("dirty count = %d, want 8", got)
	}
	if got := buf.DirtyRect(); got != (Rect{0, 0, 4, 2}) {
		t.Fatalf("dirty rect = %+v, want full buffer", got)
	}
}

func TestBufferResizePreservesContent(t *testing.T) {
	buf := NewBuffer(6, 3)
	buf.Set(2, 1, 'z', backend.DefaultStyle())
	buf.Resize(4, 2)
	if got := buf.Get(2, 1); got.Rune != 'z' {
		t.Fatalf("cell after resize = %+v, want 'z'", got)
	}
	if !buf.IsDirty() {
		t.Fatal("resize should mark the buffer dirty")
	}
}

func TestBufferFillClips(t *testing.T) {
	buf := NewBuffer(4, 4)
	buf.Fill(Rect{X: 2, Y: 2, Width: 10, Height: 10}, '#', backend.DefaultStyle())
	if buf.Get(3, 3).Rune != '#' {
		t.Fatal("fill missed an in-bounds cell")
	}
	if buf.Get(1, 1).Rune == '#' {
		t.Fatal("fill leaked outside its rect")
	}
}
