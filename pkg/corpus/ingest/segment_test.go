package ingest

import (
	"slices"
	"testing"
)

func positions(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		out = append(out, s.Position)
	}
	return out
}

func TestSegmentsTwoBlocks(t *testing.T) {
	text := "First block, line one.\nFirst block, line two.\n\nSecond block, line one.\nSecond block, line two."
	segs := slices.Collect(NewSegmenter().Segments(text))

	if got := positions(segs); !slices.Equal(got, []string{"0-0", "0-1", "1-0", "1-1"}) {
		t.Fatalf("positions = %v", got)
	}
	if segs[2].Text != "Second block, line one." || segs[2].CharCount != 23 {
		t.Errorf("segment 2 = %+v", segs[2])
	}
}

func TestSegmentsStopAtFootnoteBoundary(t *testing.T) {
	text := "First block, line one.\nFirst block, line two.\n\n---\n\nSecond block, line one.\n[^1]: A footnote."
	segs := slices.Collect(NewSegmenter().Segments(text))
	if got := positions(segs); !slices.Equal(got, []string{"0-0", "0-1"}) {
		t.Fatalf("positions = %v", got)
	}
}

func TestSegmentsBoundaryInsideBlock(t *testing.T) {
	text := "A long enough line.\n---\nAnother long line."
	segs := slices.Collect(NewSegmenter().Segments(text))
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
}

func TestSegmentsLengthThreshold(t *testing.T) {
	text := "# Ponencia\n\n0123456789\n\n0123456789a"
	segs := slices.Collect(NewSegmenter().Segments(text))
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(segs), segs)
	}
	if segs[0].Position != "1-0" || segs[0].CharCount != 11 {
		t.Errorf("segment = %+v", segs[0])
	}
}

func TestSegmentsRestartable(t *testing.T) {
	seq := NewSegmenter().Segments("Line number one here.\nLine number two here.")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 2 || !slices.Equal(first, second) {
		t.Errorf("first = %v, second = %v", first, second)
	}
}

func TestSegmentsEarlyBreak(t *testing.T) {
	seq := NewSegmenter().Segments("Line number one here.\nLine number two here.\nLine number three.")
	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterations = %d", n)
	}
}

func TestSegmentsEmpty(t *testing.T) {
	if segs := slices.Collect(NewSegmenter().Segments("# Ponencia\n\n  ")); len(segs) != 0 {
		t.Errorf("expected no segments, got %v", segs)
	}
}

func TestStandardize(t *testing.T) {
	in := "# Ponencia\n\n\u201cQuoted\u201d \u2018single\u2019\u00a0x\u00adz  "
	want := "\"Quoted\" 'single'x-z"
	if got := Standardize(in); got != want {
		t.Errorf("Standardize = %q, want %q", got, want)
	}
}

func TestOpinionSegmentIDs(t *testing.T) {
	op := NewMainOpinion("gr-123", 0, "# Ponencia\n\nThe facts are these.")
	segs := slices.Collect(op.Segments(NewSegmenter()))
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	s := segs[0]
	if s.ID != "gr-123-main-0-0" || s.OpinionID != "gr-123-main" || s.DecisionID != "gr-123" {
		t.Errorf("segment = %+v", s)
	}
}
