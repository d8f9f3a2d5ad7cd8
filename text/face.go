package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/0xDB6/Avalonia/media"
)

// ErrEmptyFontData is returned when a font source is created from no data.
var ErrEmptyFontData = errors.New("text: empty font data")

// sourceIDs numbers font sources for cache keying.
var sourceIDs atomic.Uint64

// FontSource is a loaded font file. One source serves any number of
// Faces at different sizes and is safe for concurrent use.
//
// The font is parsed twice on load: once with x/image sfnt for metrics
// and outlines, once with go-text for HarfBuzz shaping. Both views are
// read-only after creation.
//
// FontSource must not be copied after creation.
type FontSource struct {
	// addr points to the source itself and catches by-value copies.
	addr *FontSource

	id   uint64
	data []byte
	name string

	ot *opentype.Font
	hb *font.Font

	bufs sync.Pool
}

// NewFontSource creates a FontSource from TTF or OTF data. The data
// slice is copied and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	ot, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	hbFace, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}

	s := &FontSource{
		id:   sourceIDs.Add(1),
		data: dataCopy,
		ot:   ot,
		hb:   hbFace.Font,
		bufs: sync.Pool{New: func() any { return new(sfnt.Buffer) }},
	}
	s.addr = s
	s.name = extractName(ot)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewFontSource(data)
}

// ID returns the process-unique identity of this source.
func (s *FontSource) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Face creates a Face of this font at the given size in pixels per em.
func (s *FontSource) Face(size float64) *Face {
	if s == nil {
		panic("text: FontSource is nil; check the error from NewFontSource")
	}
	s.copyCheck()
	return &Face{source: s, size: size}
}

// Close releases the font data. Faces created from this source become
// invalid.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.data = nil
	s.ot = nil
	s.hb = nil
	return nil
}

// copyCheck panics if the source was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

func (s *FontSource) acquireBuffer() *sfnt.Buffer {
	return s.bufs.Get().(*sfnt.Buffer)
}

func (s *FontSource) releaseBuffer(b *sfnt.Buffer) {
	s.bufs.Put(b)
}

func extractName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

// Metrics holds font-wide vertical metrics at a face's size. Ascent
// and Descent are absolute distances from the baseline.
type Metrics struct {
	Ascent    float64
	Descent   float64
	LineGap   float64
	XHeight   float64
	CapHeight float64
}

// Height returns the recommended line height.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face is a font at a specific size. Faces are lightweight; create
// them freely. Face is safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource {
	return f.source
}

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 {
	return f.size
}

func (f *Face) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// Metrics returns the font metrics at this face's size.
func (f *Face) Metrics() Metrics {
	buf := f.source.acquireBuffer()
	defer f.source.releaseBuffer(buf)

	m, err := f.source.ot.Metrics(buf, f.ppem(), xfont.HintingFull)
	if err != nil {
		return Metrics{}
	}

	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	// Hinting can round the font-wide line height below ascent+descent;
	// a negative gap would make Height() smaller than the extents it is
	// supposed to cover.
	gap := fixedToFloat(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return Metrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   gap,
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

// GlyphIndex returns the glyph id for a rune, or 0 if the font has no
// glyph for it.
func (f *Face) GlyphIndex(r rune) GlyphID {
	buf := f.source.acquireBuffer()
	defer f.source.releaseBuffer(buf)

	idx, err := f.source.ot.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// HasGlyph reports whether the font has a glyph for the rune.
func (f *Face) HasGlyph(r rune) bool {
	return f.GlyphIndex(r) != 0
}

// GlyphAdvance returns the advance width of a glyph in pixels.
func (f *Face) GlyphAdvance(gid GlyphID) float64 {
	buf := f.source.acquireBuffer()
	defer f.source.releaseBuffer(buf)

	adv, err := f.source.ot.GlyphAdvance(buf, sfnt.GlyphIndex(gid), f.ppem(), xfont.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// GlyphBounds returns the glyph bounding box relative to the baseline
// origin, y growing downward.
func (f *Face) GlyphBounds(gid GlyphID) media.Rect {
	buf := f.source.acquireBuffer()
	defer f.source.releaseBuffer(buf)

	b, _, err := f.source.ot.GlyphBounds(buf, sfnt.GlyphIndex(gid), f.ppem(), xfont.HintingFull)
	if err != nil {
		return media.Rect{}
	}
	minX := fixedToFloat(b.Min.X)
	minY := fixedToFloat(b.Min.Y)
	return media.Rect{
		X:      minX,
		Y:      minY,
		Width:  fixedToFloat(b.Max.X) - minX,
		Height: fixedToFloat(b.Max.Y) - minY,
	}
}

// Advance returns the summed advance of the text without shaping.
// Kerning and ligatures are not applied; use ShapeText for layout.
func (f *Face) Advance(text string) float64 {
	total := 0.0
	for _, r := range text {
		total += f.GlyphAdvance(f.GlyphIndex(r))
	}
	return total
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
