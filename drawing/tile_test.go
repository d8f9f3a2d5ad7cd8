package drawing

import (
	"math"
	"testing"

	"github.com/0xDB6/Avalonia/media"
)

func rectsClose(a, b media.Rect) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}

func TestComputeTileLayout(t *testing.T) {
	content := media.Size{Width: 10, Height: 10}
	target := media.Size{Width: 40, Height: 20}

	tests := []struct {
		name             string
		mode             media.TileMode
		stretch          media.Stretch
		ax               media.AlignmentX
		ay               media.AlignmentY
		source, dest     media.RelativeRect
		content          media.Size
		wantDest         media.Rect
		wantIntermediate media.Size
		wantClip         media.Rect
		wantScale        [2]float64
		wantTranslate    [2]float64
	}{
		{
			name:             "none fill whole target",
			mode:             media.TileModeNone,
			stretch:          media.StretchFill,
			source:           media.RelativeFull,
			dest:             media.RelativeFull,
			content:          content,
			wantDest:         media.NewRect(0, 0, 40, 20),
			wantIntermediate: target,
			wantClip:         media.NewRect(0, 0, 40, 20),
			wantScale:        [2]float64{4, 2},
			wantTranslate:    [2]float64{0, 0},
		},
		{
			name:             "tile uses one tile as intermediate",
			mode:             media.TileModeTile,
			stretch:          media.StretchFill,
			source:           media.RelativeFull,
			dest:             media.RelRect(0, 0, 0.5, 0.5),
			content:          content,
			wantDest:         media.NewRect(0, 0, 20, 10),
			wantIntermediate: media.Size{Width: 20, Height: 10},
			wantClip:         media.NewRect(0, 0, 20, 10),
			wantScale:        [2]float64{2, 1},
			wantTranslate:    [2]float64{0, 0},
		},
		{
			name:             "uniform centers the short axis",
			mode:             media.TileModeNone,
			stretch:          media.StretchUniform,
			ax:               media.AlignmentXCenter,
			ay:               media.AlignmentYCenter,
			source:           media.RelativeFull,
			dest:             media.RelativeFull,
			content:          media.Size{Width: 10, Height: 20},
			wantDest:         media.NewRect(0, 0, 40, 20),
			wantIntermediate: target,
			wantClip:         media.NewRect(0, 0, 40, 20),
			wantScale:        [2]float64{1, 1},
			wantTranslate:    [2]float64{15, 0},
		},
		{
			name:             "uniform to fill overflows and clips",
			mode:             media.TileModeNone,
			stretch:          media.StretchUniformToFill,
			ax:               media.AlignmentXLeft,
			ay:               media.AlignmentYBottom,
			source:           media.RelativeFull,
			dest:             media.RelativeFull,
			content:          media.Size{Width: 10, Height: 20},
			wantDest:         media.NewRect(0, 0, 40, 20),
			wantIntermediate: target,
			wantClip:         media.NewRect(0, 0, 40, 20),
			wantScale:        [2]float64{4, 4},
			wantTranslate:    [2]float64{0, -60},
		},
		{
			name:             "stretch none keeps content size",
			mode:             media.TileModeNone,
			stretch:          media.StretchNone,
			ax:               media.AlignmentXRight,
			ay:               media.AlignmentYTop,
			source:           media.RelativeFull,
			dest:             media.RelativeFull,
			content:          content,
			wantDest:         media.NewRect(0, 0, 40, 20),
			wantIntermediate: target,
			wantClip:         media.NewRect(0, 0, 40, 20),
			wantScale:        [2]float64{1, 1},
			wantTranslate:    [2]float64{30, 0},
		},
		{
			name:             "relative source selects content region",
			mode:             media.TileModeTile,
			stretch:          media.StretchFill,
			source:           media.RelRect(0.5, 0, 0.5, 1),
			dest:             media.AbsRect(0, 0, 10, 10),
			content:          content,
			wantDest:         media.NewRect(0, 0, 10, 10),
			wantIntermediate: media.Size{Width: 10, Height: 10},
			wantClip:         media.NewRect(0, 0, 10, 10),
			wantScale:        [2]float64{2, 1},
			wantTranslate:    [2]float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTileLayout(tt.mode, tt.stretch, tt.ax, tt.ay, tt.source, tt.dest, tt.content, target)
			if !rectsClose(got.DestRect, tt.wantDest) {
				t.Errorf("DestRect = %v, want %v", got.DestRect, tt.wantDest)
			}
			if got.IntermediateSize != tt.wantIntermediate {
				t.Errorf("IntermediateSize = %v, want %v", got.IntermediateSize, tt.wantIntermediate)
			}
			if !rectsClose(got.Clip, tt.wantClip) {
				t.Errorf("Clip = %v, want %v", got.Clip, tt.wantClip)
			}
			if got.ScaleX != tt.wantScale[0] || got.ScaleY != tt.wantScale[1] {
				t.Errorf("scale = (%v, %v), want %v", got.ScaleX, got.ScaleY, tt.wantScale)
			}
			if got.TranslateX != tt.wantTranslate[0] || got.TranslateY != tt.wantTranslate[1] {
				t.Errorf("translate = (%v, %v), want %v", got.TranslateX, got.TranslateY, tt.wantTranslate)
			}
		})
	}
}

func TestTileLayoutTransformMapsContentToIntermediate(t *testing.T) {
	// Fill stretch of 10x10 content into the full 40x20 target: the
	// content corners must land on the intermediate corners.
	layout := computeTileLayout(
		media.TileModeNone, media.StretchFill,
		media.AlignmentXLeft, media.AlignmentYTop,
		media.RelativeFull, media.RelativeFull,
		media.Size{Width: 10, Height: 10},
		media.Size{Width: 40, Height: 20},
	)

	if got := layout.Transform.TransformPoint(media.Pt(0, 0)); got != media.Pt(0, 0) {
		t.Errorf("origin maps to %v, want (0,0)", got)
	}
	if got := layout.Transform.TransformPoint(media.Pt(10, 10)); got != media.Pt(40, 20) {
		t.Errorf("corner maps to %v, want (40,20)", got)
	}
}

func TestTileLayoutNoneOffsetsByDestOrigin(t *testing.T) {
	layout := computeTileLayout(
		media.TileModeNone, media.StretchFill,
		media.AlignmentXLeft, media.AlignmentYTop,
		media.RelativeFull, media.AbsRect(5, 5, 10, 10),
		media.Size{Width: 10, Height: 10},
		media.Size{Width: 40, Height: 20},
	)

	if !rectsClose(layout.Clip, media.NewRect(5, 5, 10, 10)) {
		t.Errorf("Clip = %v, want the destination rect", layout.Clip)
	}
	if got := layout.Transform.TransformPoint(media.Pt(0, 0)); got != media.Pt(5, 5) {
		t.Errorf("origin maps to %v, want the destination origin", got)
	}
}

func TestStretchScaleDegenerateSource(t *testing.T) {
	sx, sy := stretchScale(media.StretchFill, media.Size{Width: 10, Height: 10}, media.Size{})
	if sx != 1 || sy != 1 {
		t.Errorf("scale for empty source = (%v, %v), want (1, 1)", sx, sy)
	}
}
