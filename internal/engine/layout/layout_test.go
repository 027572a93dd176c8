package layout

import (
	"testing"

	"github.com/dshills/inkstone/internal/engine/document"
)

// fixedMetrics measures every rune as 10 units wide with 20-unit lines,
// doubling the line height for style 9.
type fixedMetrics struct{}

func (fixedMetrics) Measure(text string, _ document.StyleID) float64 {
	n := 0
	for range text {
		n++
	}
	return float64(n) * 10
}

func (fixedMetrics) LineHeight(style document.StyleID) float64 {
	if style == 9 {
		return 40
	}
	return 20
}

func newTestEngine(text string, width float64) (*Engine, *document.Document) {
	doc := document.NewFromString(text)
	e := NewEngine(doc, fixedMetrics{})
	e.SetWrapWidth(width)
	return e, doc
}

func TestLayoutUnavailableWithoutWidth(t *testing.T) {
	doc := document.NewFromString("some text")
	e := NewEngine(doc, fixedMetrics{})

	geom := e.Geometry(0)
	if !geom.IsEmpty() {
		t.Error("expected empty geometry before width is set")
	}
	if h := e.ParagraphHeight(0); h != 0 {
		t.Errorf("expected zero height, got %v", h)
	}
}

func TestLayoutSingleLine(t *testing.T) {
	e, _ := newTestEngine("hello", 100)
	geom := e.Geometry(0)
	if len(geom.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(geom.Lines))
	}
	ln := geom.Lines[0]
	if ln.Start != 0 || ln.End != 5 {
		t.Errorf("line range [%d,%d), want [0,5)", ln.Start, ln.End)
	}
	if ln.Width != 50 {
		t.Errorf("line width %v, want 50", ln.Width)
	}
	if geom.Height != 20 {
		t.Errorf("height %v, want 20", geom.Height)
	}
}

func TestLayoutEmptyParagraph(t *testing.T) {
	e, _ := newTestEngine("", 100)
	geom := e.Geometry(0)
	if len(geom.Lines) != 1 {
		t.Fatalf("expected 1 line for empty paragraph, got %d", len(geom.Lines))
	}
	if geom.Height != 20 {
		t.Errorf("height %v, want 20", geom.Height)
	}
}

func TestLayoutGreedyWrap(t *testing.T) {
	// "aaa bbb ccc" at width 70: "aaa bbb " fills 70 exactly with its
	// trailing space absorbed, "ccc" wraps.
	e, _ := newTestEngine("aaa bbb ccc", 70)
	geom := e.Geometry(0)
	if len(geom.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(geom.Lines))
	}
	if geom.Lines[0].Start != 0 || geom.Lines[0].End != 8 {
		t.Errorf("first line [%d,%d), want [0,8)", geom.Lines[0].Start, geom.Lines[0].End)
	}
	if geom.Lines[1].Start != 8 || geom.Lines[1].End != 11 {
		t.Errorf("second line [%d,%d), want [8,11)", geom.Lines[1].Start, geom.Lines[1].End)
	}
	if geom.Lines[1].Top != 20 {
		t.Errorf("second line top %v, want 20", geom.Lines[1].Top)
	}
	if geom.Height != 40 {
		t.Errorf("height %v, want 40", geom.Height)
	}
}

func TestLayoutOverlongWordOverflows(t *testing.T) {
	e, _ := newTestEngine("hi exceedinglylongword yo", 100)
	geom := e.Geometry(0)
	if len(geom.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(geom.Lines))
	}
	// The long word sits alone on its own overflowing line.
	mid := geom.Lines[1]
	if got := e.doc.TextRange(0, mid.Start, mid.End); got != "exceedinglylongword" {
		t.Errorf("middle line %q, want the overlong word", got)
	}
	if mid.Width <= 100 {
		t.Errorf("expected overflowing width, got %v", mid.Width)
	}
}

func TestCacheInvalidation(t *testing.T) {
	e, doc := newTestEngine("hello world\nsecond", 200)

	g0 := e.Geometry(0)
	if got := e.Geometry(0); got != g0 {
		t.Error("expected cached geometry on repeat query")
	}

	// Editing paragraph 0 invalidates only paragraph 0.
	g1 := e.Geometry(1)
	if err := doc.ReplaceRange(0, 0, 0, "x"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if got := e.Geometry(0); got == g0 {
		t.Error("expected recompute after edit")
	}
	if got := e.Geometry(1); got != g1 {
		t.Error("expected untouched paragraph to stay cached")
	}

	// A width change drops everything.
	e.SetWrapWidth(100)
	if _, ok := e.Cached(1); ok {
		t.Error("expected cache cleared by width change")
	}
}

func TestCacheSurvivesIndexShift(t *testing.T) {
	e, doc := newTestEngine("aaa\nbbb", 200)
	e.Geometry(0)
	e.Geometry(1)

	// Insert at the front: old entries now sit at wrong indices but their
	// generations cannot match the shifted paragraphs.
	if err := doc.InsertParagraph(0, "zzz"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	geom := e.Geometry(1)
	if got := doc.Text(1); got != "aaa" {
		t.Fatalf("unexpected document order: %q", got)
	}
	if len(geom.Lines) != 1 || geom.Lines[0].End != 3 {
		t.Errorf("stale cache entry served after shift: %+v", geom.Lines)
	}
}

func TestCaretPoint(t *testing.T) {
	e, _ := newTestEngine("aaa bbb ccc", 70)
	x, top, h := e.CaretPoint(document.Position{Paragraph: 0, Offset: 9})
	if x != 10 {
		t.Errorf("x = %v, want 10", x)
	}
	if top != 20 {
		t.Errorf("top = %v, want 20", top)
	}
	if h != 20 {
		t.Errorf("height = %v, want 20", h)
	}
}

func TestPositionForPoint(t *testing.T) {
	e, _ := newTestEngine("aaa bbb ccc", 70)
	tests := []struct {
		y, x float64
		want document.Position
	}{
		{0, 0, document.Position{Paragraph: 0, Offset: 0}},
		{0, 24, document.Position{Paragraph: 0, Offset: 2}},
		{0, 26, document.Position{Paragraph: 0, Offset: 3}},
		{25, 0, document.Position{Paragraph: 0, Offset: 8}},
		{25, 1000, document.Position{Paragraph: 0, Offset: 11}},
		{-50, 0, document.Position{Paragraph: 0, Offset: 0}},
		{9999, 4, document.Position{Paragraph: 0, Offset: 8}},
	}
	for _, tt := range tests {
		if got := e.PositionForPoint(0, tt.y, tt.x); got != tt.want {
			t.Errorf("PositionForPoint(0, %v, %v) = %v, want %v", tt.y, tt.x, got, tt.want)
		}
	}
}

func TestStyleRunLineHeight(t *testing.T) {
	doc := document.NewFromString("hello")
	if err := doc.SetRuns(0, []document.StyleRun{{Start: 0, End: 5, Style: 9}}); err != nil {
		t.Fatalf("set runs failed: %v", err)
	}
	e := NewEngine(doc, fixedMetrics{})
	e.SetWrapWidth(200)
	if h := e.ParagraphHeight(0); h != 40 {
		t.Errorf("height %v, want 40 from styled run", h)
	}
}

func TestEstimatedHeight(t *testing.T) {
	doc := document.New()
	e := NewEngine(doc, fixedMetrics{})
	e.SetEstimatedCharsPerLine(10)

	if h := e.EstimatedHeight(""); h != 20 {
		t.Errorf("empty estimate %v, want 20", h)
	}
	if h := e.EstimatedHeight("0123456789012345"); h != 40 {
		t.Errorf("two-line estimate %v, want 40", h)
	}
}
