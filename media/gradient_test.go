package media

import "testing"

func TestGradientStopsSorted(t *testing.T) {
	stops := GradientStops{
		{Offset: 0.8, Color: Blue},
		{Offset: 0.2, Color: Red},
		{Offset: 0.5, Color: Green},
	}
	sorted := stops.Sorted()

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Offset < sorted[i-1].Offset {
			t.Fatalf("not sorted at %d: %v", i, sorted)
		}
	}
	// The input slice is left untouched.
	if stops[0].Offset != 0.8 {
		t.Errorf("input mutated: %v", stops)
	}
}

func TestGradientStopsSortedStable(t *testing.T) {
	stops := GradientStops{
		{Offset: 0.5, Color: Red},
		{Offset: 0.5, Color: Green},
		{Offset: 0.1, Color: Blue},
	}
	sorted := stops.Sorted()
	if sorted[1].Color != Red || sorted[2].Color != Green {
		t.Errorf("equal offsets reordered: %v", sorted)
	}
}

func TestGradientStopsSortedAlreadySorted(t *testing.T) {
	stops := GradientStops{
		{Offset: 0, Color: Red},
		{Offset: 1, Color: Blue},
	}
	sorted := stops.Sorted()
	if &sorted[0] != &stops[0] {
		t.Error("sorted input should be returned as-is")
	}
}

func TestNewLinearGradientBrushDefaults(t *testing.T) {
	b := NewLinearGradientBrush(GradientStops{{Offset: 0, Color: Red}, {Offset: 1, Color: Blue}})
	if b.StartPoint.ToAbsolute(NewRect(0, 0, 10, 10)) != Pt(5, 0) {
		t.Errorf("StartPoint = %+v, want top center", b.StartPoint)
	}
	if b.EndPoint.ToAbsolute(NewRect(0, 0, 10, 10)) != Pt(5, 10) {
		t.Errorf("EndPoint = %+v, want bottom center", b.EndPoint)
	}
	if b.BrushOpacity() != 1 {
		t.Errorf("Opacity = %v, want 1", b.BrushOpacity())
	}
}

func TestNewRadialGradientBrushDefaults(t *testing.T) {
	b := NewRadialGradientBrush(GradientStops{{Offset: 0, Color: White}, {Offset: 1, Color: Black}})
	bounds := NewRect(0, 0, 100, 60)
	if got := b.Center.ToAbsolute(bounds); got != Pt(50, 30) {
		t.Errorf("Center = %+v, want {50 30}", got)
	}
	if got := b.RadiusX.ToAbsolute(bounds.Width); got != 50 {
		t.Errorf("RadiusX = %v, want 50", got)
	}
	if got := b.RadiusY.ToAbsolute(bounds.Height); got != 30 {
		t.Errorf("RadiusY = %v, want 30", got)
	}
	if b.GradientOrigin != b.Center {
		t.Error("GradientOrigin should default to Center")
	}
}

func TestSpreadMethodString(t *testing.T) {
	tests := []struct {
		s    SpreadMethod
		want string
	}{
		{SpreadPad, "pad"},
		{SpreadReflect, "reflect"},
		{SpreadRepeat, "repeat"},
		{SpreadMethod(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
