package text

import "testing"

// TestSegmentMixedDirection splits Latin-then-Hebrew text. The space
// between runs resolves to the paragraph direction and stays with the
// Latin run.
func TestSegmentMixedDirection(t *testing.T) {
	text := "Hello שלום"

	segments := SegmentText(text)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
	}

	want := []Segment{
		{Text: "Hello ", Start: 0, End: 6, Direction: DirectionLTR, Level: 0},
		{Text: "שלום", Start: 6, End: 14, Direction: DirectionRTL, Level: 1},
	}
	for i, w := range want {
		if segments[i] != w {
			t.Errorf("segment %d = %+v, want %+v", i, segments[i], w)
		}
	}
}

func TestSegmentPureLTR(t *testing.T) {
	segments := SegmentText("Hello World")
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	s := segments[0]
	if s.Text != "Hello World" || s.Start != 0 || s.End != 11 {
		t.Errorf("segment = %+v, want full string", s)
	}
	if s.Direction != DirectionLTR {
		t.Errorf("Direction = %v, want LTR", s.Direction)
	}
}

// TestSegmentPureRTL verifies the paragraph direction is detected from
// the first strong character.
func TestSegmentPureRTL(t *testing.T) {
	segments := SegmentText("שלום")
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Direction != DirectionRTL {
		t.Errorf("Direction = %v, want RTL", segments[0].Direction)
	}
}

func TestSegmentEmpty(t *testing.T) {
	if got := SegmentText(""); got != nil {
		t.Errorf("SegmentText(\"\") = %v, want nil", got)
	}
}

// TestSegmentNeutralBase checks that direction-neutral text resolves
// to the segmenter's base direction.
func TestSegmentNeutralBase(t *testing.T) {
	ltr := SegmentText("...")
	if len(ltr) != 1 || ltr[0].Direction != DirectionLTR {
		t.Errorf("LTR base: got %+v, want one LTR segment", ltr)
	}

	rtl := SegmentTextRTL("...")
	if len(rtl) != 1 || rtl[0].Direction != DirectionRTL {
		t.Errorf("RTL base: got %+v, want one RTL segment", rtl)
	}
}

// TestSegmentOffsetsCoverText verifies segments tile the input with no
// gaps or overlap, in logical order.
func TestSegmentOffsetsCoverText(t *testing.T) {
	texts := []string{
		"Hello",
		"Hello שלום world",
		"ש a ל b",
	}
	for _, text := range texts {
		segments := SegmentText(text)
		pos := 0
		for i, s := range segments {
			if s.Start != pos {
				t.Errorf("%q segment %d: Start=%d, want %d", text, i, s.Start, pos)
			}
			if s.Text != text[s.Start:s.End] {
				t.Errorf("%q segment %d: Text=%q does not match offsets", text, i, s.Text)
			}
			pos = s.End
		}
		if pos != len(text) {
			t.Errorf("%q: segments end at %d, want %d", text, pos, len(text))
		}
	}
}
