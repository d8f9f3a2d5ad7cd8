package path

import (
	"math"
	"testing"

	"github.com/0xDB6/Avalonia/media"
)

func TestFlattenPolygon(t *testing.T) {
	g := &media.RectangleGeometry{Rect: media.NewRect(0, 0, 10, 10)}
	figures := Flatten(g.PathOps(), media.Identity(), Tolerance)

	if len(figures) != 1 {
		t.Fatalf("figure count = %d, want 1", len(figures))
	}
	fig := figures[0]
	if !fig.Closed {
		t.Error("rectangle figure should be closed")
	}
	// Move, three lines, then the closing point back to the start.
	if len(fig.Points) != 5 {
		t.Errorf("point count = %d, want 5", len(fig.Points))
	}
	if fig.Points[0] != fig.Points[len(fig.Points)-1] {
		t.Error("closed figure should end at its start")
	}
}

func TestFlattenSeparatesFigures(t *testing.T) {
	g := media.NewStreamGeometry()
	ctx := g.Open()
	ctx.BeginFigure(media.Pt(0, 0))
	ctx.LineTo(media.Pt(10, 0))
	ctx.EndFigure(false)
	ctx.BeginFigure(media.Pt(20, 20))
	ctx.LineTo(media.Pt(30, 20))
	ctx.EndFigure(true)

	figures := Flatten(g.PathOps(), media.Identity(), Tolerance)
	if len(figures) != 2 {
		t.Fatalf("figure count = %d, want 2", len(figures))
	}
	if figures[0].Closed {
		t.Error("first figure should be open")
	}
	if !figures[1].Closed {
		t.Error("second figure should be closed")
	}
}

func TestFlattenCurveWithinTolerance(t *testing.T) {
	g := &media.EllipseGeometry{Center: media.Pt(50, 50), RadiusX: 40, RadiusY: 40}
	figures := Flatten(g.PathOps(), media.Identity(), 0.1)
	if len(figures) != 1 {
		t.Fatalf("figure count = %d, want 1", len(figures))
	}

	// Every flattened point should lie close to the true circle.
	for _, p := range figures[0].Points {
		r := p.Distance(media.Pt(50, 50))
		if math.Abs(r-40) > 0.5 {
			t.Fatalf("point %v at radius %v, want ~40", p, r)
		}
	}
	// A 0.1 tolerance needs far more than the 4 cubic endpoints.
	if len(figures[0].Points) < 16 {
		t.Errorf("point count = %d, expected a dense flattening", len(figures[0].Points))
	}
}

func TestFlattenAppliesTransform(t *testing.T) {
	g := &media.LineGeometry{Start: media.Pt(1, 0), End: media.Pt(2, 0)}
	m := media.Scale(10, 10)
	figures := Flatten(g.PathOps(), m, Tolerance)
	if len(figures) != 1 {
		t.Fatalf("figure count = %d, want 1", len(figures))
	}
	if figures[0].Points[0] != media.Pt(10, 0) || figures[0].Points[1] != media.Pt(20, 0) {
		t.Errorf("transformed points = %v", figures[0].Points)
	}
}

func TestFlattenDropsDegenerate(t *testing.T) {
	ops := []media.PathOp{{Verb: media.PathMoveTo, P1: media.Pt(5, 5)}}
	if figures := Flatten(ops, media.Identity(), Tolerance); len(figures) != 0 {
		t.Errorf("lone moveto produced figures: %v", figures)
	}
}
