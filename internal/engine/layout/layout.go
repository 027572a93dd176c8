// Package layout computes wrapped line geometry for paragraphs. Text is
// measured through an external Provider; results are cached per paragraph
// and keyed on the paragraph's generation, so edits invalidate exactly the
// paragraphs they touch and a width change invalidates everything.
package layout

import (
	"unicode"

	"github.com/dshills/inkstone/internal/engine/document"
)

// Provider measures text for layout. Implementations wrap a font stack
// (or fixed-width cells); the layout engine never touches fonts directly.
type Provider interface {
	// Measure returns the advance width of text rendered in the style.
	Measure(text string, style document.StyleID) float64

	// LineHeight returns the line height for the style.
	LineHeight(style document.StyleID) float64
}

// DefaultEstimatedCharsPerLine is the wrap estimate used for paragraphs
// that have not been laid out yet.
const DefaultEstimatedCharsPerLine = 80

// Engine produces and caches Geometry for a document's paragraphs.
//
// Geometry is computed lazily on first query after invalidation. Before a
// positive wrap width is set, every query returns empty geometry and zero
// heights rather than an error; callers tolerate the empty result.
type Engine struct {
	doc     *document.Document
	metrics Provider
	width   float64

	// Index-addressed cache, entries validated by paragraph generation.
	cache []cacheEntry

	estCharsPerLine int
}

type cacheEntry struct {
	gen  uint64 // 0 means empty slot
	geom *Geometry
}

// NewEngine creates a layout engine over a document using the given
// measurement provider. No wrap width is set; geometry stays empty until
// SetWrapWidth is called.
func NewEngine(doc *document.Document, metrics Provider) *Engine {
	return &Engine{
		doc:             doc,
		metrics:         metrics,
		estCharsPerLine: DefaultEstimatedCharsPerLine,
	}
}

// WrapWidth returns the current available width, or 0 if none is set.
func (e *Engine) WrapWidth() float64 {
	return e.width
}

// SetWrapWidth sets the available width and drops the whole cache. A
// non-positive width puts the engine back into the "layout unavailable"
// state.
func (e *Engine) SetWrapWidth(width float64) {
	if width == e.width {
		return
	}
	e.width = width
	e.cache = nil
}

// SetEstimatedCharsPerLine tunes the height estimate for paragraphs that
// have not been laid out.
func (e *Engine) SetEstimatedCharsPerLine(n int) {
	if n > 0 {
		e.estCharsPerLine = n
	}
}

// InvalidateAll drops every cached geometry.
func (e *Engine) InvalidateAll() {
	e.cache = nil
}

// Geometry returns the wrapped line geometry for the paragraph at index,
// computing it if the cached entry is missing or stale. Returns empty
// geometry for an invalid index or while no wrap width is set.
func (e *Engine) Geometry(index int) *Geometry {
	if index < 0 || index >= e.doc.ParagraphCount() || e.width <= 0 {
		return &Geometry{}
	}
	gen := e.doc.ParagraphGeneration(index)
	if index < len(e.cache) {
		if ent := e.cache[index]; ent.gen == gen && ent.geom != nil {
			return ent.geom
		}
	}
	geom := e.layoutParagraph(index)
	e.storeCache(index, cacheEntry{gen: gen, geom: geom})
	return geom
}

// Cached returns the cached geometry for a paragraph without computing it.
// ok is false when the entry is missing or stale.
func (e *Engine) Cached(index int) (*Geometry, bool) {
	if index < 0 || index >= len(e.cache) {
		return nil, false
	}
	ent := e.cache[index]
	if ent.geom == nil || ent.gen != e.doc.ParagraphGeneration(index) {
		return nil, false
	}
	return ent.geom, true
}

// ParagraphHeight returns the laid-out height of a paragraph, or 0 while
// layout is unavailable.
func (e *Engine) ParagraphHeight(index int) float64 {
	return e.Geometry(index).Height
}

// EstimatedHeight approximates a paragraph's height from its text without
// measuring: line count guessed from the chars-per-line estimate times the
// default line height. Used by the scroll window for paragraphs that have
// never been laid out.
func (e *Engine) EstimatedHeight(text string) float64 {
	lineHeight := e.metrics.LineHeight(0)
	if text == "" {
		return lineHeight
	}
	chars := 0
	for range text {
		chars++
	}
	lines := (chars + e.estCharsPerLine - 1) / e.estCharsPerLine
	if lines < 1 {
		lines = 1
	}
	return float64(lines) * lineHeight
}

// LineIndexForOffset returns the line index within the paragraph's
// geometry that contains the rune offset.
func (e *Engine) LineIndexForOffset(index, offset int) int {
	return e.Geometry(index).LineIndexForOffset(offset)
}

// CaretPoint returns the horizontal pixel position, the vertical offset of
// the caret's line within its paragraph, and the line height for a
// position. All zero while layout is unavailable.
func (e *Engine) CaretPoint(pos document.Position) (x, top, height float64) {
	pos = e.doc.Clamp(pos)
	geom := e.Geometry(pos.Paragraph)
	ln, ok := geom.LineForOffset(pos.Offset)
	if !ok {
		return 0, 0, 0
	}
	x = e.measureRange(pos.Paragraph, ln.Start, pos.Offset)
	return x, ln.Top, ln.Height
}

// PositionForPoint hit-tests a point inside a paragraph: y is relative to
// the paragraph top, x to the line start. The result is the valid position
// whose caret is nearest the point.
func (e *Engine) PositionForPoint(index int, y, x float64) document.Position {
	if index < 0 {
		index = 0
	}
	if count := e.doc.ParagraphCount(); index >= count {
		index = count - 1
	}
	geom := e.Geometry(index)
	if geom.IsEmpty() {
		return e.doc.Clamp(document.Position{Paragraph: index})
	}
	ln := geom.Lines[geom.LineIndexAtY(y)]
	return document.Position{Paragraph: index, Offset: e.offsetForX(index, ln, x)}
}

// OffsetInLine hit-tests a horizontal position on a specific line of a
// paragraph, clamping the line index into range.
func (e *Engine) OffsetInLine(index, lineIdx int, x float64) int {
	geom := e.Geometry(index)
	if geom.IsEmpty() {
		return 0
	}
	if lineIdx < 0 {
		lineIdx = 0
	}
	if lineIdx >= len(geom.Lines) {
		lineIdx = len(geom.Lines) - 1
	}
	return e.offsetForX(index, geom.Lines[lineIdx], x)
}

// offsetForX walks the line's runes accumulating advances and returns the
// rune offset whose caret is nearest x.
func (e *Engine) offsetForX(index int, ln Line, x float64) int {
	if x <= 0 {
		return ln.Start
	}
	text := e.doc.TextRange(index, ln.Start, ln.End)
	offset := ln.Start
	acc := 0.0
	for _, r := range text {
		w := e.metrics.Measure(string(r), e.doc.StyleAt(document.Position{Paragraph: index, Offset: offset}))
		if x < acc+w/2 {
			return offset
		}
		acc += w
		offset++
	}
	return offset
}

// measureRange measures the advance width of the paragraph's runes
// [start, end), honoring style run boundaries.
func (e *Engine) measureRange(index, start, end int) float64 {
	if end <= start {
		return 0
	}
	total := 0.0
	for _, seg := range e.styleSegments(index, start, end) {
		total += e.metrics.Measure(e.doc.TextRange(index, seg.start, seg.end), seg.style)
	}
	return total
}

type styleSegment struct {
	start, end int
	style      document.StyleID
}

// styleSegments splits [start, end) of a paragraph into maximal spans of a
// single style.
func (e *Engine) styleSegments(index, start, end int) []styleSegment {
	runs := e.doc.Runs(index)
	if len(runs) == 0 {
		return []styleSegment{{start: start, end: end}}
	}
	var segs []styleSegment
	pos := start
	for pos < end {
		style := e.doc.StyleAt(document.Position{Paragraph: index, Offset: pos})
		segEnd := end
		for _, r := range runs {
			if r.Start > pos && r.Start < segEnd {
				segEnd = r.Start
			}
			if r.End > pos && r.End < segEnd {
				segEnd = r.End
			}
		}
		segs = append(segs, styleSegment{start: pos, end: segEnd, style: style})
		pos = segEnd
	}
	return segs
}

// layoutParagraph runs greedy word wrapping for one paragraph.
//
// Words (maximal non-space runs) are accumulated onto the current line
// until the next word would exceed the wrap width; whitespace at a break
// stays with the line it follows. A single word wider than the width is
// forced onto its own, overflowing line.
func (e *Engine) layoutParagraph(index int) *Geometry {
	text := []rune(e.doc.Text(index))
	lineHeight := e.lineHeightAt(index, 0)
	if len(text) == 0 {
		return &Geometry{
			Lines:  []Line{{Start: 0, End: 0, Top: 0, Height: lineHeight}},
			Height: lineHeight,
		}
	}

	var lines []Line
	top := 0.0
	lineStart := 0
	lineWidth := 0.0
	i := 0
	for i < len(text) {
		segStart := i
		isSpace := unicode.IsSpace(text[i])
		for i < len(text) && unicode.IsSpace(text[i]) == isSpace {
			i++
		}
		segWidth := e.measureRange(index, segStart, i)

		if !isSpace && lineStart < segStart && lineWidth+segWidth > e.width {
			// Break before this word; the whitespace already consumed
			// stays on the finished line. The word is re-examined as the
			// first segment of the new line.
			h := e.lineHeightForRange(index, lineStart, segStart, lineHeight)
			lines = append(lines, Line{Start: lineStart, End: segStart, Top: top, Height: h, Width: lineWidth})
			top += h
			lineStart = segStart
			lineWidth = 0
			i = segStart
			continue
		}

		if !isSpace && lineStart == segStart && segWidth > e.width {
			// Single word wider than the width: it overflows alone.
			h := e.lineHeightForRange(index, segStart, i, lineHeight)
			lines = append(lines, Line{Start: segStart, End: i, Top: top, Height: h, Width: segWidth})
			top += h
			lineStart = i
			lineWidth = 0
			continue
		}

		lineWidth += segWidth
	}
	if lineStart < len(text) || len(lines) == 0 {
		h := e.lineHeightForRange(index, lineStart, len(text), lineHeight)
		lines = append(lines, Line{Start: lineStart, End: len(text), Top: top, Height: h, Width: lineWidth})
		top += h
	}

	return &Geometry{Lines: lines, Height: top}
}

// lineHeightForRange returns the tallest style line height across a rune
// range, falling back to the paragraph default.
func (e *Engine) lineHeightForRange(index, start, end int, fallback float64) float64 {
	h := fallback
	for _, seg := range e.styleSegments(index, start, end) {
		if lh := e.metrics.LineHeight(seg.style); lh > h {
			h = lh
		}
	}
	return h
}

func (e *Engine) lineHeightAt(index, offset int) float64 {
	return e.metrics.LineHeight(e.doc.StyleAt(document.Position{Paragraph: index, Offset: offset}))
}

func (e *Engine) storeCache(index int, ent cacheEntry) {
	if index >= len(e.cache) {
		grown := make([]cacheEntry, e.doc.ParagraphCount())
		copy(grown, e.cache)
		e.cache = grown
	}
	if index < len(e.cache) {
		e.cache[index] = ent
	}
}
