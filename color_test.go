package inkwell

import (
	"math"
	"testing"
)

func TestRGBACSS(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want string
	}{
		{"opaque black", Black, "#000000"},
		{"opaque white", White, "#ffffff"},
		{"opaque red", RGB(1, 0, 0), "#ff0000"},
		{"half grey", RGB(0.5, 0.5, 0.5), "#7f7f7f"},
		{"transparent", Transparent, "rgba(0,0,0,0.000)"},
		{"translucent blue", RGBA{R: 0, G: 0, B: 1, A: 0.5}, "rgba(0,0,255,0.500)"},
		{"clamped overshoot", RGB(1.5, -0.5, 0), "#ff0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.CSS(); got != tt.want {
				t.Errorf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRGBAColorRoundtrip(t *testing.T) {
	in := RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1}
	out := FromColor(in.Color())
	const eps = 1.0 / 255
	if math.Abs(out.R-in.R) > eps || math.Abs(out.G-in.G) > eps ||
		math.Abs(out.B-in.B) > eps || math.Abs(out.A-in.A) > eps {
		t.Errorf("FromColor(Color()) = %+v, want approximately %+v", out, in)
	}
}

func TestRGBALuma(t *testing.T) {
	if got := White.Luma(); math.Abs(got-1) > 1e-9 {
		t.Errorf("White.Luma() = %v, want 1", got)
	}
	if got := Black.Luma(); got != 0 {
		t.Errorf("Black.Luma() = %v, want 0", got)
	}
	if g, r := RGB(0, 1, 0).Luma(), RGB(1, 0, 0).Luma(); g <= r {
		t.Errorf("green luma %v should exceed red luma %v", g, r)
	}
}

func TestRGBAInvertedBrightness(t *testing.T) {
	// Brightness inversion swaps black and white but keeps alpha.
	got := Black.WithAlpha(0.5).InvertedBrightness()
	if got.R != 1 || got.G != 1 || got.B != 1 || got.A != 0.5 {
		t.Errorf("inverted black = %+v, want white with alpha 0.5", got)
	}
	got = White.InvertedBrightness()
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("inverted white = %+v, want black", got)
	}
	// Applying the inversion twice restores the original color.
	c := RGBA{R: 0.8, G: 0.3, B: 0.1, A: 1}
	twice := c.InvertedBrightness().InvertedBrightness()
	if math.Abs(twice.R-c.R) > 1e-9 || math.Abs(twice.G-c.G) > 1e-9 || math.Abs(twice.B-c.B) > 1e-9 {
		t.Errorf("double inversion = %+v, want %+v", twice, c)
	}
}

func TestWithAlpha(t *testing.T) {
	c := RGB(0.1, 0.2, 0.3)
	got := c.WithAlpha(0.25)
	if got.A != 0.25 || got.R != c.R || got.G != c.G || got.B != c.B {
		t.Errorf("WithAlpha(0.25) = %+v", got)
	}
}
