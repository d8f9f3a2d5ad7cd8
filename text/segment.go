package text

import "golang.org/x/text/unicode/bidi"

// Segment is a contiguous run of text with uniform direction.
type Segment struct {
	// Text is the run's slice of the original string.
	Text string

	// Start and End are byte offsets into the original string.
	Start int
	End   int

	// Direction is the resolved direction of the run.
	Direction Direction

	// Level is the bidi embedding level (even LTR, odd RTL).
	Level int
}

// Segmenter splits text into direction-uniform runs using the Unicode
// bidirectional algorithm.
type Segmenter struct {
	// Base is the paragraph base direction. Neutral-only text
	// resolves to it.
	Base Direction
}

// Segment splits text into runs. Empty text yields nil.
func (s *Segmenter) Segment(text string) []Segment {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	levels := s.levels(text, len(runes))

	segments := make([]Segment, 0, 2)
	startRune := 0
	byteOffset := 0
	startByte := 0
	for i := 1; i <= len(runes); i++ {
		byteOffset += len(string(runes[i-1]))
		if i < len(runes) && levels[i] == levels[startRune] {
			continue
		}
		segments = append(segments, Segment{
			Text:      text[startByte:byteOffset],
			Start:     startByte,
			End:       byteOffset,
			Direction: levelDirection(levels[startRune]),
			Level:     levels[startRune],
		})
		startRune = i
		startByte = byteOffset
	}
	return segments
}

// levels computes per-rune bidi embedding levels.
func (s *Segmenter) levels(text string, n int) []int {
	levels := make([]int, n)

	base := bidi.Neutral
	if s.Base == DirectionRTL {
		base = bidi.RightToLeft
	}

	var p bidi.Paragraph
	_, _ = p.SetString(text, bidi.DefaultDirection(base))

	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// Run positions are rune indices, inclusive on both ends.
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < n; j++ {
			levels[j] = level
		}
	}
	return levels
}

func levelDirection(level int) Direction {
	if level%2 == 1 {
		return DirectionRTL
	}
	return DirectionLTR
}

// SegmentText splits text into direction runs with an LTR base.
func SegmentText(text string) []Segment {
	s := Segmenter{}
	return s.Segment(text)
}

// SegmentTextRTL splits text into direction runs with an RTL base.
func SegmentTextRTL(text string) []Segment {
	s := Segmenter{Base: DirectionRTL}
	return s.Segment(text)
}
