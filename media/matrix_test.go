package media

import (
	"math"
	"testing"
)

func matrixNear(a, b Matrix, tol float64) bool {
	return math.Abs(a.A-b.A) < tol && math.Abs(a.B-b.B) < tol &&
		math.Abs(a.C-b.C) < tol && math.Abs(a.D-b.D) < tol &&
		math.Abs(a.E-b.E) < tol && math.Abs(a.F-b.F) < tol
}

func pointNear(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func TestMultiplyAppliesOtherFirst(t *testing.T) {
	// Scale then translate: translate.Multiply(scale) scales first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	want := Pt(12, 2)
	if !pointNear(got, want, 1e-9) {
		t.Errorf("TransformPoint = %+v, want %+v", got, want)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translation", Translate(5, -3)},
		{"scale", Scale(2, 0.5)},
		{"rotation", Rotate(math.Pi / 3)},
		{"composite", Translate(4, 7).Multiply(Rotate(1.1)).Multiply(Scale(3, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Multiply(tt.m.Invert())
			if !matrixNear(got, Identity(), 1e-9) {
				t.Errorf("m * m^-1 = %+v, want identity", got)
			}
		})
	}
}

func TestInvertDegenerate(t *testing.T) {
	m := Scale(0, 0)
	if m.IsInvertible() {
		t.Error("zero scale should not be invertible")
	}
	if got := m.Invert(); !got.IsIdentity() {
		t.Errorf("Invert() of degenerate matrix = %+v, want identity", got)
	}
}

func TestAboutOrigin(t *testing.T) {
	// Scaling about (10, 10) keeps the origin point fixed.
	m := Scale(2, 2).AboutOrigin(Pt(10, 10))
	if got := m.TransformPoint(Pt(10, 10)); !pointNear(got, Pt(10, 10), 1e-9) {
		t.Errorf("origin moved to %+v", got)
	}
	if got := m.TransformPoint(Pt(11, 10)); !pointNear(got, Pt(12, 10), 1e-9) {
		t.Errorf("TransformPoint = %+v, want {12 10}", got)
	}
}

func TestIsTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"pure translation", Translate(10, 20), true},
		{"scale", Scale(2, 2), false},
		{"rotation", Rotate(math.Pi / 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.want {
				t.Errorf("Matrix%+v.IsTranslation() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}
