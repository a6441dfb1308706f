package render

import (
	"image/color"
	"testing"

	"github.com/sketchdoc/sketchdoc/pkg/model"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ffffff", color.RGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#000000", color.RGBA{0x00, 0x00, 0x00, 0xff}, true},
		{"#FF8800", color.RGBA{0xff, 0x88, 0x00, 0xff}, true},
		{"#f0a", color.RGBA{0xff, 0x00, 0xaa, 0xff}, true},
		{" #ff0000 ", color.RGBA{0xff, 0x00, 0x00, 0xff}, true},
		{"none", color.RGBA{}, false},
		{"", color.RGBA{}, false},
		{"ff0000", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseHexColor(tc.in)
			if ok != tc.ok {
				t.Fatalf("parseHexColor(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("parseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStyleOr(t *testing.T) {
	s := model.NewShape("s1", model.ShapeKindRectangle)

	if got := styleOr(s, "fillColor", "#123456"); got != "#ffffff" {
		t.Errorf("present key = %q, want #ffffff", got)
	}
	if got := styleOr(s, "nope", "#123456"); got != "#123456" {
		t.Errorf("missing key = %q, want fallback", got)
	}

	s.SetStyle("fillColor", "")
	if got := styleOr(s, "fillColor", "#123456"); got != "#123456" {
		t.Errorf("empty value = %q, want fallback", got)
	}
}

func TestColorOr(t *testing.T) {
	s := model.NewShape("s1", model.ShapeKindRectangle)

	t.Run("parses style values", func(t *testing.T) {
		s.SetStyle("fillColor", "#ff0000")
		got, paint := colorOr(s, "fillColor", color.Black)
		if !paint {
			t.Fatal("paint = false, want true")
		}
		if got != (color.RGBA{0xff, 0x00, 0x00, 0xff}) {
			t.Errorf("color = %v, want red", got)
		}
	})

	t.Run("none disables painting", func(t *testing.T) {
		s.SetStyle("fillColor", "none")
		if _, paint := colorOr(s, "fillColor", color.Black); paint {
			t.Error("paint = true, want false")
		}
	})

	t.Run("missing key falls back", func(t *testing.T) {
		got, paint := colorOr(s, "nope", color.White)
		if !paint || got != color.Color(color.White) {
			t.Errorf("got (%v, %v), want (white, true)", got, paint)
		}
	})

	t.Run("garbage falls back", func(t *testing.T) {
		s.SetStyle("fillColor", "chartreuse")
		got, paint := colorOr(s, "fillColor", color.White)
		if !paint || got != color.Color(color.White) {
			t.Errorf("got (%v, %v), want (white, true)", got, paint)
		}
	})
}

func TestStrokeWidthOf(t *testing.T) {
	s := model.NewShape("s1", model.ShapeKindRectangle)

	if got := strokeWidthOf(s); got != 1 {
		t.Errorf("default = %g, want 1", got)
	}

	s.SetStyle("strokeWidth", "2.5")
	if got := strokeWidthOf(s); got != 2.5 {
		t.Errorf("strokeWidth 2.5 = %g", got)
	}

	s.SetStyle("strokeWidth", "abc")
	if got := strokeWidthOf(s); got != 1 {
		t.Errorf("unparseable = %g, want 1", got)
	}

	s.SetStyle("strokeWidth", "-2")
	if got := strokeWidthOf(s); got != 1 {
		t.Errorf("negative = %g, want 1", got)
	}

	s.RemoveStyle("strokeWidth")
	if got := strokeWidthOf(s); got != 1 {
		t.Errorf("missing = %g, want 1", got)
	}
}
