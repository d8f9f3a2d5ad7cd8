package drawing

import (
	"math"
	"sort"

	"github.com/0xDB6/Avalonia/media"
)

// shader produces the paint color for one device pixel. It is the CPU
// analogue of a shader object: brush resolution turns a declarative
// brush into one of these, and span shading samples it per pixel.
//
// sample returns premultiplied RGBA8. Brush and ambient opacity are
// folded in by the resolver, so span shading applies coverage only.
type shader interface {
	sample(x, y float64) (r, g, b, a uint8)
}

// transparentShader is the fallback for unresolvable brush sources.
type transparentShader struct{}

func (transparentShader) sample(x, y float64) (r, g, b, a uint8) {
	return 0, 0, 0, 0
}

// solidShader paints a single premultiplied color everywhere.
type solidShader struct {
	r, g, b, a uint8
}

func newSolidShader(c media.Color, opacity float64) *solidShader {
	r, g, b, a := c.MulAlpha(opacity).PremulRGBA8()
	return &solidShader{r: r, g: g, b: b, a: a}
}

func (s *solidShader) sample(x, y float64) (r, g, b, a uint8) {
	return s.r, s.g, s.b, s.a
}

// composedShader layers foreground over background, the compose stage
// used by focal radial gradients and acrylic materials.
type composedShader struct {
	background shader
	foreground shader
}

func (s *composedShader) sample(x, y float64) (r, g, b, a uint8) {
	fr, fg, fb, fa := s.foreground.sample(x, y)
	if fa == 255 {
		return fr, fg, fb, fa
	}
	br, bg, bb, ba := s.background.sample(x, y)
	if fa == 0 {
		return br, bg, bb, ba
	}
	inv := uint16(255 - fa)
	r = fr + uint8((uint16(br)*inv+127)/255)
	g = fg + uint8((uint16(bg)*inv+127)/255)
	b = fb + uint8((uint16(bb)*inv+127)/255)
	a = fa + uint8((uint16(ba)*inv+127)/255)
	return r, g, b, a
}

// samplerShader adapts a BackgroundSampler to the shader contract.
type samplerShader struct {
	fn      BackgroundSampler
	opacity float64
}

func (s *samplerShader) sample(x, y float64) (r, g, b, a uint8) {
	return s.fn(x, y).MulAlpha(s.opacity).PremulRGBA8()
}

// sortedStops returns the stops ordered by offset. Brushes are supposed
// to carry sorted stops already; sorting here keeps the resolver
// idempotent on pre-sorted input and correct on the rest.
func sortedStops(stops media.GradientStops) media.GradientStops {
	if sort.SliceIsSorted(stops, func(i, j int) bool {
		return stops[i].Offset < stops[j].Offset
	}) {
		return stops
	}
	return stops.Sorted()
}

// applySpread normalizes t to [0, 1] per the spread method.
func applySpread(t float64, method media.SpreadMethod) float64 {
	switch method {
	case media.SpreadRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case media.SpreadReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// colorAtOffset returns the interpolated stop color at offset t. The
// stops must be sorted. Out-of-range t takes the nearest endpoint;
// coincident stops take the earlier one.
func colorAtOffset(stops media.GradientStops, t float64) media.Color {
	if len(stops) == 0 {
		return media.Color{}
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1 := stops[idx-1]
	s2 := stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	local := (t - s1.Offset) / (s2.Offset - s1.Offset)
	return s1.Color.Lerp(s2.Color, local)
}
