package text

import (
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/0xDB6/Avalonia/media"
)

// testFace creates a Face at size 16 for shaping tests. Go Regular has
// Latin, Cyrillic and Greek coverage, including kerning tables.
func testFace(t *testing.T) *Face {
	t.Helper()
	return testFontSource(t).Face(16)
}

// TestShaperBasicLatin verifies shaping a Latin word produces one glyph
// per rune with positive advances and increasing pen positions.
func TestShaperBasicLatin(t *testing.T) {
	face := testFace(t)
	shaper := NewShaper()

	glyphs := shaper.Shape(face, "Hello", DirectionLTR)
	if len(glyphs) != 5 {
		t.Fatalf("Shape(\"Hello\"): got %d glyphs, want 5", len(glyphs))
	}

	var prevX float64
	for i, g := range glyphs {
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d: XAdvance=%f, want > 0", i, g.XAdvance)
		}
		if i > 0 && g.X <= prevX {
			t.Errorf("glyph %d: X=%f should be > previous X=%f", i, g.X, prevX)
		}
		prevX = g.X
	}
}

func TestShaperVariousText(t *testing.T) {
	face := testFace(t)
	shaper := NewShaper()

	tests := []struct {
		name    string
		text    string
		wantLen int
	}{
		{"single char", "A", 1},
		{"word", "Hello", 5},
		{"with space", "Hello World", 11},
		{"numbers", "12345", 5},
		{"punctuation", "Hello, World!", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs := shaper.Shape(face, tt.text, DirectionLTR)
			if len(glyphs) != tt.wantLen {
				t.Errorf("Shape(%q): got %d glyphs, want %d", tt.text, len(glyphs), tt.wantLen)
			}
			for i, g := range glyphs {
				if g.XAdvance <= 0 {
					t.Errorf("glyph %d in %q: XAdvance=%f, want > 0", i, tt.text, g.XAdvance)
				}
			}
		})
	}
}

func TestShaperEmptyAndNil(t *testing.T) {
	shaper := NewShaper()

	if got := shaper.Shape(testFace(t), "", DirectionLTR); got != nil {
		t.Errorf("Shape(\"\") = %v, want nil", got)
	}
	if got := shaper.Shape(nil, "Hello", DirectionLTR); got != nil {
		t.Errorf("Shape with nil face = %v, want nil", got)
	}
}

// TestShaperKerning shapes the classic AV pair. Shaped width should
// never exceed the unkerned sum by more than rounding noise.
func TestShaperKerning(t *testing.T) {
	face := testFace(t)
	shaper := NewShaper()

	glyphsA := shaper.Shape(face, "A", DirectionLTR)
	glyphsV := shaper.Shape(face, "V", DirectionLTR)
	if len(glyphsA) != 1 || len(glyphsV) != 1 {
		t.Fatalf("expected 1 glyph each, got %d and %d", len(glyphsA), len(glyphsV))
	}
	individual := glyphsA[0].XAdvance + glyphsV[0].XAdvance

	glyphsAV := shaper.Shape(face, "AV", DirectionLTR)
	if len(glyphsAV) != 2 {
		t.Fatalf("Shape(\"AV\"): got %d glyphs, want 2", len(glyphsAV))
	}
	combined := glyphsAV[1].X + glyphsAV[1].XAdvance

	if combined < individual {
		t.Logf("kerning tightened AV: %.2f < %.2f", combined, individual)
	}
	if combined > individual*1.1 {
		t.Errorf("AV width %.2f suspiciously larger than unkerned %.2f", combined, individual)
	}
}

func TestShaperHorizontalHasNoYAdvance(t *testing.T) {
	glyphs := NewShaper().Shape(testFace(t), "ABC", DirectionLTR)
	for i, g := range glyphs {
		if g.YAdvance != 0 {
			t.Errorf("glyph %d: YAdvance=%f, want 0 for horizontal text", i, g.YAdvance)
		}
	}
}

// TestShapeTextSingleRun verifies the segmenting entry point on text
// that resolves to one LTR run.
func TestShapeTextSingleRun(t *testing.T) {
	face := testFace(t)

	run := ShapeText(face, "Hello")
	if run.Face != face {
		t.Error("run.Face should be the shaping face")
	}
	if len(run.Glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(run.Glyphs))
	}
	for i, g := range run.Glyphs {
		if g.Cluster != i {
			t.Errorf("glyph %d: Cluster=%d, want %d", i, g.Cluster, i)
		}
	}
	if run.Advance() <= 0 {
		t.Errorf("Advance() = %f, want > 0", run.Advance())
	}
}

// TestShapeTextMixedDirection shapes text with Latin and Hebrew runs.
// Go Regular has no Hebrew glyphs, so the second run shapes to notdef
// glyphs, but segmentation and cluster offsets must still hold.
func TestShapeTextMixedDirection(t *testing.T) {
	face := testFace(t)

	run := ShapeText(face, "Hello שלום")
	if len(run.Glyphs) != 10 {
		t.Fatalf("got %d glyphs, want 10", len(run.Glyphs))
	}

	// First 6 glyphs come from the LTR run, clusters 0-5.
	for i := 0; i < 6; i++ {
		if c := run.Glyphs[i].Cluster; c != i {
			t.Errorf("glyph %d: Cluster=%d, want %d", i, c, i)
		}
	}
	// Remaining glyphs come from the Hebrew run, clusters 6-9.
	for i := 6; i < 10; i++ {
		if c := run.Glyphs[i].Cluster; c < 6 || c > 9 {
			t.Errorf("glyph %d: Cluster=%d, want in [6, 9]", i, c)
		}
	}

	latinOnly := ShapeText(face, "Hello ")
	if run.Advance() < latinOnly.Advance() {
		t.Errorf("mixed advance %f should be >= latin-only advance %f",
			run.Advance(), latinOnly.Advance())
	}
}

func TestShapeTextEmpty(t *testing.T) {
	face := testFace(t)

	run := ShapeText(face, "")
	if len(run.Glyphs) != 0 {
		t.Errorf("got %d glyphs, want 0", len(run.Glyphs))
	}
	if run.Advance() != 0 {
		t.Errorf("Advance() = %f, want 0", run.Advance())
	}
}

// TestGlyphRunBounds verifies bounds are positioned relative to the
// baseline origin, extending above it for an uppercase letter.
func TestGlyphRunBounds(t *testing.T) {
	face := testFace(t)

	run := ShapeText(face, "A")
	run.BaselineOrigin.X = 10
	run.BaselineOrigin.Y = 20

	b := run.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		t.Fatalf("Bounds() = %+v, want positive size", b)
	}
	if b.Y >= 20 {
		t.Errorf("bounds top %f should be above baseline y=20", b.Y)
	}
	if bottom := b.Y + b.Height; bottom > 22 {
		t.Errorf("bounds bottom %f should sit near baseline y=20", bottom)
	}
	if b.X < 9 {
		t.Errorf("bounds left %f should be near origin x=10", b.X)
	}
}

func TestGlyphRunBoundsEmpty(t *testing.T) {
	run := &GlyphRun{BaselineOrigin: media.Point{X: 3, Y: 4}}

	b := run.Bounds()
	if b.X != 3 || b.Y != 4 || b.Width != 0 || b.Height != 0 {
		t.Errorf("empty run Bounds() = %+v, want zero rect at origin", b)
	}
}

// TestShaperConcurrency shapes from several goroutines sharing one
// Shaper; the pooled HarfBuzz instances must not interfere.
func TestShaperConcurrency(t *testing.T) {
	face := testFace(t)
	shaper := NewShaper()

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				glyphs := shaper.Shape(face, "Hello World", DirectionLTR)
				if len(glyphs) != 11 {
					errs <- "wrong glyph count"
					return
				}
				for _, g := range glyphs {
					if g.XAdvance <= 0 {
						errs <- "zero advance"
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Errorf("concurrent shaping: %s", msg)
	}
}

func TestConvertGlyphsEmpty(t *testing.T) {
	if got := convertGlyphs(nil, 0); got != nil {
		t.Errorf("convertGlyphs(nil) = %v, want nil", got)
	}
}

func TestFixedPointRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.5, 12.75, 16, 72} {
		back := fixedToFloat(floatToFixed(v))
		diff := back - v
		if diff < 0 {
			diff = -diff
		}
		if diff > 0.02 {
			t.Errorf("round trip %.4f -> %.4f, diff %.4f > 0.02", v, back, diff)
		}
	}
}

func BenchmarkShape(b *testing.B) {
	source, err := NewFontSource(goregular.TTF)
	if err != nil {
		b.Fatalf("failed to create font source: %v", err)
	}
	defer func() {
		_ = source.Close()
	}()
	face := source.Face(16)
	shaper := NewShaper()

	text := "The quick brown fox jumps over the lazy dog"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = shaper.Shape(face, text, DirectionLTR)
	}
}
