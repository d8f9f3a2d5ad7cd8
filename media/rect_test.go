package media

import (
	"math"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 4, 4), NewRect(2, 2, 4, 4)},
		{"identical", NewRect(1, 1, 3, 3), NewRect(1, 1, 3, 3), NewRect(1, 1, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := NewRect(0, 0, 5, 5).Intersect(NewRect(10, 10, 5, 5)); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
}

func TestRectUnion(t *testing.T) {
	a, b := NewRect(0, 0, 10, 10), NewRect(20, 5, 10, 10)
	want := NewRect(0, 0, 30, 15)
	if got := a.Union(b); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	// Empty rects do not contribute.
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union = %+v, want %+v", got, b)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if !r.Contains(Pt(0, 0)) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Pt(10, 10)) {
		t.Error("bottom-right corner should be outside")
	}
	if !r.Contains(Pt(9.999, 5)) {
		t.Error("interior point should be inside")
	}
}

func TestTransformBounds(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	got := r.TransformBounds(Rotate(math.Pi / 2).Multiply(Identity()))
	// Rotating 90 degrees about the origin maps the rect to x in [-10, 0].
	if math.Abs(got.X-(-10)) > 1e-9 || math.Abs(got.Width-10) > 1e-9 || math.Abs(got.Height-10) > 1e-9 {
		t.Errorf("TransformBounds = %+v", got)
	}
}

func TestRoundedRectNormalized(t *testing.T) {
	rr := NewRoundedRect(NewRect(0, 0, 10, 20), 8).Normalized()
	// Half the shorter side is 5.
	if rr.RadiusTopLeft != 5 || rr.RadiusBottomRight != 5 {
		t.Errorf("Normalized radii = %+v, want 5", rr)
	}
	if !rr.IsUniform() {
		t.Error("uniform input should stay uniform")
	}
}

func TestRoundedRectDeflate(t *testing.T) {
	rr := NewRoundedRect(NewRect(0, 0, 20, 20), 6).Deflate(2)
	if rr.Rect != NewRect(2, 2, 16, 16) {
		t.Errorf("Deflate rect = %+v", rr.Rect)
	}
	if rr.RadiusTopLeft != 4 {
		t.Errorf("Deflate radius = %v, want 4", rr.RadiusTopLeft)
	}

	// Radii never go negative.
	rr = NewRoundedRect(NewRect(0, 0, 20, 20), 1).Deflate(5)
	if rr.RadiusTopLeft != 0 {
		t.Errorf("radius = %v, want 0", rr.RadiusTopLeft)
	}
}

func TestRelativeResolution(t *testing.T) {
	bounds := NewRect(10, 10, 100, 50)

	if got := RelPt(0.5, 0.5).ToAbsolute(bounds); got != Pt(60, 35) {
		t.Errorf("RelPt center = %+v, want {60 35}", got)
	}
	if got := AbsPt(3, 4).ToAbsolute(bounds); got != Pt(3, 4) {
		t.Errorf("AbsPt = %+v, want {3 4}", got)
	}
	if got := RelScalar(0.5).ToAbsolute(100); got != 50 {
		t.Errorf("RelScalar = %v, want 50", got)
	}
	if got := RelativeFull.ToAbsolute(bounds); got != bounds {
		t.Errorf("RelativeFull = %+v, want %+v", got, bounds)
	}
}
