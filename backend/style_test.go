package backend

import "testing"

func TestColorBlend(t *testing.T) {
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Fatalf("blend t=0 = %+v, want source", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Fatalf("blend t=1 = %+v, want target", got)
	}

	mid := black.Blend(white, 0.5)
	if !mid.IsSet() {
		t.Fatal("blend of set colors should be set")
	}
	if mid.R < 100 || mid.R > 160 || mid.G != mid.R || mid.B != mid.R {
		t.Fatalf("midpoint blend = %d/%d/%d, want roughly even gray", mid.R, mid.G, mid.B)
	}
}

func TestColorBlendUnsetPassthrough(t *testing.T) {
	set := RGB(10, 20, 30)
	var unset Color

	if got := set.Blend(unset, 0.5); got != set {
		t.Fatalf("blend toward unset = %+v, want source unchanged", got)
	}
	if got := unset.Blend(set, 0.5); got != set {
		t.Fatalf("blend from unset = %+v, want target", got)
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().Bold(true).Underline(true)
	if s.Attrs&AttrBold == 0 || s.Attrs&AttrUnderline == 0 {
		t.Fatalf("attrs = %b, want bold and underline", s.Attrs)
	}
	s = s.Bold(false)
	if s.Attrs&AttrBold != 0 {
		t.Fatal("bold should clear")
	}
	if s.Attrs&AttrUnderline == 0 {
		t.Fatal("underline should survive clearing bold")
	}
}

func TestStyleFaded(t *testing.T) {
	base := DefaultStyle().Foreground(RGB(200, 200, 200))
	bg := RGB(0, 0, 0)

	if got := base.Faded(1, bg); got != base {
		t.Fatalf("opacity 1 = %+v, want unchanged", got)
	}

	dimmed := base.Faded(0.5, bg)
	if dimmed.FG.R >= 200 {
		t.Fatalf("faded red channel = %d, want darker than 200", dimmed.FG.R)
	}

	gone := base.Faded(0, bg)
	if gone.FG != bg {
		t.Fatalf("opacity 0 fg = %+v, want background %+v", gone.FG, bg)
	}

	// Negative opacity clamps to fully faded.
	if got := base.Faded(-1, bg); got.FG != bg {
		t.Fatalf("negative opacity fg = %+v, want background", got.FG)
	}
}
