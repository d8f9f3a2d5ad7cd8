package media

import "testing"

func TestBoxShadowMargin(t *testing.T) {
	tests := []struct {
		name   string
		shadow BoxShadow
		want   [4]float64 // left, top, right, bottom
	}{
		{
			"offset down-right",
			BoxShadow{OffsetX: 4, OffsetY: 6, Blur: 8, Color: Black},
			[4]float64{4, 2, 12, 14},
		},
		{
			"offset up-left",
			BoxShadow{OffsetX: -4, OffsetY: -6, Blur: 8, Color: Black},
			[4]float64{12, 14, 4, 2},
		},
		{
			"spread only",
			BoxShadow{Spread: 3, Color: Black},
			[4]float64{3, 3, 3, 3},
		},
		{
			"inset contributes nothing",
			BoxShadow{OffsetX: 4, Blur: 8, Inset: true, Color: Black},
			[4]float64{0, 0, 0, 0},
		},
		{
			"blur swallowed by offset",
			BoxShadow{OffsetX: 10, Blur: 2, Color: Black},
			[4]float64{0, 2, 12, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, tp, r, b := tt.shadow.Margin()
			got := [4]float64{l, tp, r, b}
			if got != tt.want {
				t.Errorf("Margin = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxShadowIsVisible(t *testing.T) {
	if (BoxShadow{Color: Black}).IsVisible() {
		t.Error("zero-extent shadow should be invisible")
	}
	if (BoxShadow{Blur: 4}).IsVisible() {
		t.Error("transparent shadow should be invisible")
	}
	if !(BoxShadow{Blur: 4, Color: Black}).IsVisible() {
		t.Error("blurred opaque shadow should be visible")
	}
	if !(BoxShadow{OffsetX: 2, Color: Black}).IsVisible() {
		t.Error("offset opaque shadow should be visible")
	}
}

func TestBoxShadowTransformBounds(t *testing.T) {
	r := NewRect(10, 10, 100, 100)
	s := BoxShadow{OffsetX: 5, OffsetY: 5, Blur: 10, Color: Black}
	got := s.TransformBounds(r)
	want := NewRect(5, 5, 120, 120)
	if got != want {
		t.Errorf("TransformBounds = %+v, want %+v", got, want)
	}

	// Inset shadows never grow the bounds.
	s.Inset = true
	if got := s.TransformBounds(r); got != r {
		t.Errorf("inset TransformBounds = %+v, want %+v", got, r)
	}
}

func TestBoxShadowsAggregate(t *testing.T) {
	shadows := BoxShadows{
		{OffsetX: 4, Blur: 4, Color: Black},
		{Blur: 2, Inset: true, Color: Black},
	}
	if !shadows.HasOutset() || !shadows.HasInset() {
		t.Error("expected both outset and inset shadows")
	}

	r := NewRect(0, 0, 10, 10)
	got := shadows.TransformBounds(r)
	want := NewRect(0, -4, 18, 18)
	if got != want {
		t.Errorf("TransformBounds = %+v, want %+v", got, want)
	}
}
