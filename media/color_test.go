package media

import (
	"image/color"
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Color
	}{
		{"short rgb", "#F00", Red},
		{"short rgba", "#F00F", Red},
		{"long rgb", "#00FF00", Green},
		{"long rgba", "0000FFFF", Blue},
		{"half alpha", "#FF000080", Color{R: 1, A: float64(0x80) / 255}},
		{"invalid length", "#12", Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 ||
				math.Abs(got.B-tt.want.B) > 1e-9 || math.Abs(got.A-tt.want.A) > 1e-9 {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestNRGBARoundTrip(t *testing.T) {
	c := Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	got := FromColor(c.NRGBA())
	if math.Abs(got.R-c.R) > 0.01 || math.Abs(got.G-c.G) > 0.01 ||
		math.Abs(got.B-c.B) > 0.01 || math.Abs(got.A-c.A) > 0.01 {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}

func TestFromColorZeroAlpha(t *testing.T) {
	got := FromColor(color.NRGBA{R: 255, A: 0})
	if got != (Color{}) {
		t.Errorf("FromColor(transparent) = %+v, want zero", got)
	}
}

func TestLerp(t *testing.T) {
	mid := Black.Lerp(White, 0.5)
	if math.Abs(mid.R-0.5) > 1e-9 || math.Abs(mid.G-0.5) > 1e-9 || math.Abs(mid.B-0.5) > 1e-9 {
		t.Errorf("Lerp midpoint = %+v", mid)
	}
	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp(0) = %+v, want red", got)
	}
	if got := Red.Lerp(Blue, 1); got != Blue {
		t.Errorf("Lerp(1) = %+v, want blue", got)
	}
}

func TestMulAlpha(t *testing.T) {
	c := ARGB(0.8, 1, 0, 0).MulAlpha(0.5)
	if math.Abs(c.A-0.4) > 1e-9 {
		t.Errorf("MulAlpha = %v, want 0.4", c.A)
	}
}
