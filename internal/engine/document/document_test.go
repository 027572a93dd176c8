package document

import (
	"errors"
	"testing"
)

func TestNewNeverEmpty(t *testing.T) {
	d := New()
	if d.ParagraphCount() != 1 {
		t.Fatalf("expected 1 paragraph, got %d", d.ParagraphCount())
	}
	if d.Text(0) != "" {
		t.Errorf("expected empty paragraph, got %q", d.Text(0))
	}
}

func TestNewFromString(t *testing.T) {
	d := NewFromString("Hello world\nSecond paragraph\nThird")
	if d.ParagraphCount() != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", d.ParagraphCount())
	}
	if d.Text(1) != "Second paragraph" {
		t.Errorf("expected %q, got %q", "Second paragraph", d.Text(1))
	}
	if d.Length(0) != 11 {
		t.Errorf("expected length 11, got %d", d.Length(0))
	}
}

func TestNewFromStringNormalizesLineEndings(t *testing.T) {
	d := NewFromString("a\r\nb\rc")
	if d.ParagraphCount() != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", d.ParagraphCount())
	}
	if d.Text(2) != "c" {
		t.Errorf("expected %q, got %q", "c", d.Text(2))
	}
}

func TestInsertParagraph(t *testing.T) {
	d := NewFromString("one\ntwo")
	gen := d.Generation()

	if err := d.InsertParagraph(1, "middle"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if d.ParagraphCount() != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", d.ParagraphCount())
	}
	if d.Text(1) != "middle" || d.Text(2) != "two" {
		t.Errorf("unexpected order: %q / %q", d.Text(1), d.Text(2))
	}
	if d.Generation() == gen {
		t.Error("generation not bumped by insert")
	}

	if err := d.InsertParagraph(5, "x"); !errors.Is(err, ErrParagraphOutOfRange) {
		t.Errorf("expected ErrParagraphOutOfRange, got %v", err)
	}
}

func TestRemoveParagraph(t *testing.T) {
	d := NewFromString("one\ntwo\nthree")
	if err := d.RemoveParagraph(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if d.ParagraphCount() != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", d.ParagraphCount())
	}
	if d.Text(1) != "three" {
		t.Errorf("expected %q, got %q", "three", d.Text(1))
	}
	if err := d.RemoveParagraph(7); !errors.Is(err, ErrParagraphOutOfRange) {
		t.Errorf("expected ErrParagraphOutOfRange, got %v", err)
	}
}

func TestRemoveLastParagraphResetsToEmpty(t *testing.T) {
	d := NewFromString("only")
	if err := d.RemoveParagraph(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if d.ParagraphCount() != 1 {
		t.Fatalf("expected 1 paragraph, got %d", d.ParagraphCount())
	}
	if d.Text(0) != "" {
		t.Errorf("expected empty paragraph, got %q", d.Text(0))
	}
}

func TestSplit(t *testing.T) {
	d := NewFromString("Hello world")
	if err := d.Split(Position{Paragraph: 0, Offset: 5}); err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if d.ParagraphCount() != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", d.ParagraphCount())
	}
	if d.Text(0) != "Hello" || d.Text(1) != " world" {
		t.Errorf("unexpected halves: %q / %q", d.Text(0), d.Text(1))
	}

	if err := d.Split(Position{Paragraph: 0, Offset: 99}); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestMergeWithNext(t *testing.T) {
	d := NewFromString("Hello\n world")
	if err := d.MergeWithNext(0); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if d.ParagraphCount() != 1 {
		t.Fatalf("expected 1 paragraph, got %d", d.ParagraphCount())
	}
	if d.Text(0) != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", d.Text(0))
	}
	if err := d.MergeWithNext(0); !errors.Is(err, ErrParagraphOutOfRange) {
		t.Errorf("expected ErrParagraphOutOfRange for last paragraph, got %v", err)
	}
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		text       string
		want       string
	}{
		{"insert", 5, 5, ",", "Hello, world"},
		{"delete", 0, 6, "", "world"},
		{"replace", 6, 11, "there", "Hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFromString("Hello world")
			if err := d.ReplaceRange(0, tt.start, tt.end, tt.text); err != nil {
				t.Fatalf("replace failed: %v", err)
			}
			if got := d.Text(0); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReplaceRangeErrors(t *testing.T) {
	d := NewFromString("abc")
	if err := d.ReplaceRange(0, 2, 1, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if err := d.ReplaceRange(0, 0, 9, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	if err := d.ReplaceRange(3, 0, 0, "x"); !errors.Is(err, ErrParagraphOutOfRange) {
		t.Errorf("expected ErrParagraphOutOfRange, got %v", err)
	}
}

func TestReplaceRangeUnicode(t *testing.T) {
	d := NewFromString("héllo")
	if d.Length(0) != 5 {
		t.Fatalf("expected rune length 5, got %d", d.Length(0))
	}
	if err := d.ReplaceRange(0, 1, 2, "e"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if d.Text(0) != "hello" {
		t.Errorf("expected %q, got %q", "hello", d.Text(0))
	}
}

func TestClamp(t *testing.T) {
	d := NewFromString("abc\nde")
	tests := []struct {
		in, want Position
	}{
		{Position{-1, -5}, Position{0, 0}},
		{Position{0, 99}, Position{0, 3}},
		{Position{9, 1}, Position{1, 1}},
		{Position{1, 99}, Position{1, 2}},
	}
	for _, tt := range tests {
		if got := d.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParagraphGenerationChangesOnEdit(t *testing.T) {
	d := NewFromString("abc\ndef")
	g0 := d.ParagraphGeneration(0)
	g1 := d.ParagraphGeneration(1)

	if err := d.ReplaceRange(0, 0, 0, "x"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if d.ParagraphGeneration(0) == g0 {
		t.Error("edited paragraph generation unchanged")
	}
	if d.ParagraphGeneration(1) != g1 {
		t.Error("untouched paragraph generation changed")
	}
}

func TestGenerationsUniqueAcrossShifts(t *testing.T) {
	d := NewFromString("a\nb\nc")
	genB := d.ParagraphGeneration(1)
	if err := d.RemoveParagraph(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// "b" shifted to index 0 but keeps its generation.
	if d.ParagraphGeneration(0) != genB {
		t.Error("paragraph generation changed by index shift")
	}
}

func TestStyleRunsAcrossEdits(t *testing.T) {
	d := NewFromString("Hello world")
	if err := d.SetRuns(0, []StyleRun{{Start: 0, End: 5, Style: 1}, {Start: 6, End: 11, Style: 2}}); err != nil {
		t.Fatalf("set runs failed: %v", err)
	}

	// Insert 2 runes at the front; both runs shift right.
	if err := d.ReplaceRange(0, 0, 0, "ab"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	runs := d.Runs(0)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Start != 2 || runs[0].End != 7 {
		t.Errorf("first run = [%d,%d), want [2,7)", runs[0].Start, runs[0].End)
	}
	if runs[1].Start != 8 || runs[1].End != 13 {
		t.Errorf("second run = [%d,%d), want [8,13)", runs[1].Start, runs[1].End)
	}
}

func TestStyleRunsAcrossSplitAndMerge(t *testing.T) {
	d := NewFromString("Hello world")
	if err := d.SetRuns(0, []StyleRun{{Start: 3, End: 8, Style: 7}}); err != nil {
		t.Fatalf("set runs failed: %v", err)
	}
	if err := d.Split(Position{Paragraph: 0, Offset: 5}); err != nil {
		t.Fatalf("split failed: %v", err)
	}

	left, right := d.Runs(0), d.Runs(1)
	if len(left) != 1 || left[0].Start != 3 || left[0].End != 5 {
		t.Errorf("left runs = %v, want [{3 5 7}]", left)
	}
	if len(right) != 1 || right[0].Start != 0 || right[0].End != 3 {
		t.Errorf("right runs = %v, want [{0 3 7}]", right)
	}

	if err := d.MergeWithNext(0); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	merged := d.Runs(0)
	if len(merged) != 2 {
		t.Fatalf("expected 2 runs after merge, got %d", len(merged))
	}
	if merged[1].Start != 5 || merged[1].End != 8 {
		t.Errorf("rebased run = [%d,%d), want [5,8)", merged[1].Start, merged[1].End)
	}
}

func TestPlainTextRoundTrip(t *testing.T) {
	const text = "one\ntwo\nthree"
	d := NewFromString(text)
	if got := d.PlainText(); got != text {
		t.Errorf("expected %q, got %q", text, got)
	}
}
