package text

import (
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// Shaper converts text to positioned glyphs using HarfBuzz shaping.
// It applies kerning, ligatures and script-specific rules.
//
// Shaper is safe for concurrent use. HarfbuzzShaper instances carry
// mutable buffers and are not, so they are pooled per call.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// defaultShaper serves ShapeText.
var defaultShaper = NewShaper()

// Shape shapes a single direction-uniform run of text. Mixed-direction
// text should be segmented first; ShapeText does both.
func (s *Shaper) Shape(face *Face, text string, dir Direction) []ShapedGlyph {
	if text == "" || face == nil || face.source == nil || face.source.hb == nil {
		return nil
	}

	// font.Face wraps the read-only *font.Font with per-use glyph
	// caches and is cheap to create, but not safe to share.
	hbFace := font.NewFace(face.source.hb)

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      hbFace,
		Size:      floatToFixed(face.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	return convertGlyphs(output.Glyphs, input.Direction)
}

// ShapeText segments text by direction, shapes each run with the
// default shaper and concatenates the runs along the baseline.
func ShapeText(face *Face, text string) *GlyphRun {
	run := &GlyphRun{Face: face}
	if text == "" || face == nil {
		return run
	}

	penX := 0.0
	runeOffset := 0
	for _, seg := range SegmentText(text) {
		glyphs := defaultShaper.Shape(face, seg.Text, seg.Direction)
		for _, g := range glyphs {
			g.X += penX
			g.Cluster += runeOffset
			run.Glyphs = append(run.Glyphs, g)
		}
		for _, g := range glyphs {
			penX += g.XAdvance
		}
		runeOffset += utf8.RuneCountInString(seg.Text)
	}
	return run
}

// mapDirection converts Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	switch d {
	case DirectionRTL:
		return di.DirectionRTL
	case DirectionTTB:
		return di.DirectionTTB
	case DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

// detectScript returns the script of the first non-space rune. Runs
// should already be script-uniform; this picks the shaping rules.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertGlyphs maps HarfBuzz output to ShapedGlyphs, accumulating pen
// positions along the run axis.
func convertGlyphs(glyphs []shaping.Glyph, dir di.Direction) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	var x, y float64
	for i, g := range glyphs {
		xOff := fixedToFloat(g.XOffset)
		yOff := fixedToFloat(g.YOffset)

		result[i] = ShapedGlyph{
			GID:     GlyphID(uint16(g.GlyphID)),
			Cluster: g.TextIndex(),
			X:       x + xOff,
			Y:       y + yOff,
		}

		adv := fixedToFloat(g.Advance)
		if dir.IsVertical() {
			result[i].YAdvance = adv
			y += adv
		} else {
			result[i].XAdvance = adv
			x += adv
		}
	}
	return result
}
