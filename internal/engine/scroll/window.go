// Package scroll maintains the virtual viewport over a document: which
// paragraphs are visible, how far the view has scrolled, and how tall the
// document is. Heights start as estimates and are replaced by measured
// values as paragraphs pass through layout, so a large document never
// needs a full layout pass up front.
package scroll

import (
	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/engine/layout"
)

// DefaultOverscan is the number of extra paragraphs prepared on each side
// of the visible range for rendering.
const DefaultOverscan = 2

// Window is the virtual scroll viewport. The scroll offset is always kept
// within [0, max(0, totalHeight-viewportHeight)]; every mutation re-clamps.
//
// The window does not watch the document. The owner reports structural
// edits through ParagraphInserted, ParagraphRemoved, and ParagraphResized,
// and may call Sync as a catch-all after bulk changes.
type Window struct {
	doc    *document.Document
	layout *layout.Engine

	tree     *HeightTree
	measured []bool

	viewport float64
	offset   float64
	overscan int

	anim *animation
}

// NewWindow creates a window over the document, seeding every paragraph
// with an estimated height.
func NewWindow(doc *document.Document, eng *layout.Engine) *Window {
	w := &Window{
		doc:      doc,
		layout:   eng,
		overscan: DefaultOverscan,
	}
	w.reset()
	return w
}

// reset rebuilds the height table from scratch with estimates.
func (w *Window) reset() {
	n := w.doc.ParagraphCount()
	w.tree = NewHeightTree(n)
	w.measured = make([]bool, n)
	for i := 0; i < n; i++ {
		w.tree.Set(i, w.layout.EstimatedHeight(w.doc.Text(i)))
	}
}

// SetOverscan sets how many paragraphs beyond the visible range RenderRange
// includes on each side.
func (w *Window) SetOverscan(n int) {
	if n >= 0 {
		w.overscan = n
	}
}

// ViewportHeight returns the current viewport height.
func (w *Window) ViewportHeight() float64 {
	return w.viewport
}

// SetViewportHeight sets the viewport height and re-clamps the offset.
func (w *Window) SetViewportHeight(h float64) {
	if h < 0 {
		h = 0
	}
	w.viewport = h
	w.offset = w.clamp(w.offset)
}

// ScrollOffset returns the current scroll offset in document space.
func (w *Window) ScrollOffset() float64 {
	return w.offset
}

// SetScrollOffset jumps to the offset immediately, clamped into range, and
// cancels any running animation.
func (w *Window) SetScrollOffset(y float64) {
	w.anim = nil
	w.offset = w.clamp(y)
}

// ScrollBy jumps by a delta immediately.
func (w *Window) ScrollBy(dy float64) {
	w.SetScrollOffset(w.offset + dy)
}

// MaxScrollOffset returns the largest valid scroll offset:
// max(0, totalHeight - viewportHeight).
func (w *Window) MaxScrollOffset() float64 {
	max := w.tree.Total() - w.viewport
	if max < 0 {
		return 0
	}
	return max
}

// TotalHeight returns the summed height of all paragraphs, mixing measured
// and estimated values.
func (w *Window) TotalHeight() float64 {
	return w.tree.Total()
}

// ParagraphHeight returns the tracked height of a paragraph.
func (w *Window) ParagraphHeight(index int) float64 {
	return w.tree.Get(index)
}

// HeightMeasured reports whether the paragraph's height came from layout
// rather than an estimate.
func (w *Window) HeightMeasured(index int) bool {
	return index >= 0 && index < len(w.measured) && w.measured[index]
}

// SetParagraphHeight records a measured height for a paragraph and
// re-clamps the offset in case the document shrank.
func (w *Window) SetParagraphHeight(index int, h float64) {
	if index < 0 || index >= w.tree.Len() {
		return
	}
	w.tree.Set(index, h)
	w.measured[index] = true
	w.offset = w.clamp(w.offset)
}

// MeasureVisible replaces estimated heights with laid-out heights for every
// paragraph in the render range. No-op while layout is unavailable.
func (w *Window) MeasureVisible() {
	if w.layout.WrapWidth() <= 0 {
		return
	}
	first, last := w.RenderRange()
	for i := first; i <= last; i++ {
		w.SetParagraphHeight(i, w.layout.ParagraphHeight(i))
	}
}

// ParagraphY returns the document-space vertical offset of the top of the
// paragraph at index.
func (w *Window) ParagraphY(index int) float64 {
	return w.tree.YPosition(index)
}

// ParagraphAtY returns the index of the paragraph covering the
// document-space vertical offset y, clamped to the first/last paragraph.
func (w *Window) ParagraphAtY(y float64) int {
	return w.tree.IndexAtY(y)
}

// VisibleRange returns the inclusive paragraph range intersecting the
// viewport. With a zero viewport only the paragraph at the offset is
// visible.
func (w *Window) VisibleRange() (first, last int) {
	n := w.doc.ParagraphCount()
	if n == 0 {
		return 0, 0
	}
	first = w.tree.IndexAtY(w.offset)
	bottom := w.offset + w.viewport
	if bottom >= w.tree.Total() {
		return first, n - 1
	}
	last = w.tree.IndexAtY(bottom)
	// A paragraph whose top sits exactly at the viewport bottom is not
	// visible.
	if last > first && w.tree.YPosition(last) >= bottom {
		last--
	}
	return first, last
}

// RenderRange is VisibleRange widened by the overscan buffer on each side,
// clamped to the document.
func (w *Window) RenderRange() (first, last int) {
	first, last = w.VisibleRange()
	first -= w.overscan
	last += w.overscan
	if first < 0 {
		first = 0
	}
	if n := w.doc.ParagraphCount(); last >= n {
		last = n - 1
	}
	return first, last
}

// ParagraphInserted makes room in the height table for a paragraph newly
// inserted at index, seeded with an estimate. The scroll offset is left
// untouched: content below the insertion point moves, the view does not.
func (w *Window) ParagraphInserted(index int) {
	if index < 0 || index > w.tree.Len() {
		return
	}
	w.tree.Insert(index, w.layout.EstimatedHeight(w.doc.Text(index)))
	w.measured = append(w.measured, false)
	copy(w.measured[index+1:], w.measured[index:])
	w.measured[index] = false
}

// ParagraphRemoved drops the height entry for a removed paragraph and
// re-clamps the offset.
func (w *Window) ParagraphRemoved(index int) {
	if index < 0 || index >= w.tree.Len() {
		return
	}
	w.tree.Remove(index)
	w.measured = append(w.measured[:index], w.measured[index+1:]...)
	w.offset = w.clamp(w.offset)
}

// ParagraphResized marks a paragraph's height stale, falling back to an
// estimate until the next measurement.
func (w *Window) ParagraphResized(index int) {
	if index < 0 || index >= w.tree.Len() {
		return
	}
	w.measured[index] = false
	w.tree.Set(index, w.layout.EstimatedHeight(w.doc.Text(index)))
	w.offset = w.clamp(w.offset)
}

// Sync reconciles the height table with the document's paragraph count
// after changes the owner did not report individually. Entries are added
// or dropped at the tail; surviving indices keep their heights.
func (w *Window) Sync() {
	n := w.doc.ParagraphCount()
	for w.tree.Len() > n {
		w.ParagraphRemoved(w.tree.Len() - 1)
	}
	for w.tree.Len() < n {
		i := w.tree.Len()
		w.tree.Insert(i, w.layout.EstimatedHeight(w.doc.Text(i)))
		w.measured = append(w.measured, false)
	}
	w.offset = w.clamp(w.offset)
}

// EnsureVisible scrolls the minimum distance needed to bring the paragraph
// fully into the viewport, immediately.
func (w *Window) EnsureVisible(index int) {
	if index < 0 || index >= w.tree.Len() {
		return
	}
	top := w.tree.YPosition(index)
	bottom := top + w.tree.Get(index)
	switch {
	case top < w.offset:
		w.SetScrollOffset(top)
	case bottom > w.offset+w.viewport:
		w.SetScrollOffset(bottom - w.viewport)
	}
}

func (w *Window) clamp(y float64) float64 {
	if y < 0 {
		return 0
	}
	if max := w.MaxScrollOffset(); y > max {
		return max
	}
	return y
}
