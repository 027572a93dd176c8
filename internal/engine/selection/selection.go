// Package selection tracks the selected span of a document as an anchor
// position plus the moving caret. The anchor never moves while the
// selection extends; collapsing or replacing the selection is the caller's
// call, not a side effect of motion.
package selection

import (
	"strings"

	"github.com/dshills/inkstone/internal/engine/cursor"
	"github.com/dshills/inkstone/internal/engine/document"
)

// Motion names a caret movement a selection can extend by.
type Motion int

const (
	MotionLeft Motion = iota
	MotionRight
	MotionWordLeft
	MotionWordRight
	MotionUp
	MotionDown
	MotionLineStart
	MotionLineEnd
	MotionPageUp
	MotionPageDown
	MotionDocStart
	MotionDocEnd
)

// Model is the selection over a document. The active end is the caret
// owned by the cursor controller; the anchor is held here.
type Model struct {
	doc    *document.Document
	cursor *cursor.Controller

	anchor document.Position
	active bool
}

// NewModel creates an empty selection bound to a document and its caret.
func NewModel(doc *document.Document, ctrl *cursor.Controller) *Model {
	return &Model{doc: doc, cursor: ctrl}
}

// Active reports whether a selection exists, empty or not.
func (m *Model) Active() bool {
	return m.active
}

// Anchor returns the fixed end of the selection.
func (m *Model) Anchor() document.Position {
	return m.anchor
}

// Head returns the moving end of the selection, which is the caret.
func (m *Model) Head() document.Position {
	return m.cursor.Position()
}

// Set places the selection explicitly: the caret moves to head and the
// anchor stays at anchor. Both ends are clamped into the document.
func (m *Model) Set(anchor, head document.Position) {
	m.anchor = m.doc.Clamp(anchor)
	m.cursor.Set(head)
	m.active = true
}

// SelectAll selects the whole document, anchor at the start, caret at the
// end.
func (m *Model) SelectAll() {
	m.Set(document.Position{}, m.doc.End())
}

// Clear drops the selection, leaving the caret where it is.
func (m *Model) Clear() {
	m.active = false
	m.anchor = document.Position{}
}

// Range returns the selected span with Start <= End. ok is false when no
// selection is active.
func (m *Model) Range() (document.Range, bool) {
	if !m.active {
		return document.Range{}, false
	}
	r := document.Range{Start: m.anchor, End: m.cursor.Position()}
	return r.Normalize(), true
}

// IsEmpty reports whether the selection is inactive or covers no runes.
func (m *Model) IsEmpty() bool {
	r, ok := m.Range()
	return !ok || r.IsEmpty()
}

// ExtendBy grows or shrinks the selection by a caret motion. A first
// extension anchors at the current caret; later extensions keep the
// anchor fixed while the caret moves.
func (m *Model) ExtendBy(motion Motion) {
	if !m.active {
		m.anchor = m.cursor.Position()
		m.active = true
	}
	switch motion {
	case MotionLeft:
		m.cursor.MoveLeft()
	case MotionRight:
		m.cursor.MoveRight()
	case MotionWordLeft:
		m.cursor.MoveWordLeft()
	case MotionWordRight:
		m.cursor.MoveWordRight()
	case MotionUp:
		m.cursor.MoveUp()
	case MotionDown:
		m.cursor.MoveDown()
	case MotionLineStart:
		m.cursor.MoveToLineStart()
	case MotionLineEnd:
		m.cursor.MoveToLineEnd()
	case MotionPageUp:
		m.cursor.MovePageUp()
	case MotionPageDown:
		m.cursor.MovePageDown()
	case MotionDocStart:
		m.cursor.MoveToDocStart()
	case MotionDocEnd:
		m.cursor.MoveToDocEnd()
	}
}

// ExtendTo moves the caret to pos with the anchor held fixed, anchoring at
// the current caret if no selection is active. Used for shift-click and
// drag.
func (m *Model) ExtendTo(pos document.Position) {
	if !m.active {
		m.anchor = m.cursor.Position()
		m.active = true
	}
	m.cursor.Set(pos)
}

// SelectedText returns the selection's text. Spans within one paragraph
// are plain substrings; spans crossing paragraphs join the pieces with
// U+2029, the paragraph separator, so paragraph boundaries survive a round
// trip through the clipboard.
func (m *Model) SelectedText() string {
	r, ok := m.Range()
	if !ok || r.IsEmpty() {
		return ""
	}
	if r.Start.Paragraph == r.End.Paragraph {
		return m.doc.TextRange(r.Start.Paragraph, r.Start.Offset, r.End.Offset)
	}

	var b strings.Builder
	b.WriteString(m.doc.TextRange(r.Start.Paragraph, r.Start.Offset, m.doc.Length(r.Start.Paragraph)))
	for p := r.Start.Paragraph + 1; p < r.End.Paragraph; p++ {
		b.WriteRune(document.ParagraphSeparator)
		b.WriteString(m.doc.Text(p))
	}
	b.WriteRune(document.ParagraphSeparator)
	b.WriteString(m.doc.TextRange(r.End.Paragraph, 0, r.End.Offset))
	return b.String()
}

// Length returns the selection length in runes, counting each paragraph
// separator as one rune.
func (m *Model) Length() int {
	r, ok := m.Range()
	if !ok {
		return 0
	}
	if r.Start.Paragraph == r.End.Paragraph {
		return r.End.Offset - r.Start.Offset
	}
	n := m.doc.Length(r.Start.Paragraph) - r.Start.Offset
	for p := r.Start.Paragraph + 1; p < r.End.Paragraph; p++ {
		n += 1 + m.doc.Length(p)
	}
	return n + 1 + r.End.Offset
}
