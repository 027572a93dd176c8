package engine

import (
	"time"
	"unicode"

	"github.com/dshills/inkstone/internal/engine/cursor"
	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/engine/layout"
	"github.com/dshills/inkstone/internal/engine/scroll"
	"github.com/dshills/inkstone/internal/engine/selection"
	"github.com/dshills/inkstone/internal/fontmetrics"
)

// Re-export commonly used types so most callers only import this package.
type (
	// Position is a (paragraph, rune offset) location in the document.
	Position = document.Position

	// Range is a normalizable span between two positions.
	Range = document.Range

	// StyleRun attaches a style to a rune span of one paragraph.
	StyleRun = document.StyleRun

	// StyleID identifies a style in the application's style table.
	StyleID = document.StyleID

	// Motion names a caret movement.
	Motion = selection.Motion
)

// Re-export motions for callers that bind keys to them.
const (
	MotionLeft      = selection.MotionLeft
	MotionRight     = selection.MotionRight
	MotionWordLeft  = selection.MotionWordLeft
	MotionWordRight = selection.MotionWordRight
	MotionUp        = selection.MotionUp
	MotionDown      = selection.MotionDown
	MotionLineStart = selection.MotionLineStart
	MotionLineEnd   = selection.MotionLineEnd
	MotionPageUp    = selection.MotionPageUp
	MotionPageDown  = selection.MotionPageDown
	MotionDocStart  = selection.MotionDocStart
	MotionDocEnd    = selection.MotionDocEnd
)

// Engine combines the document, layout, scroll window, caret, and
// selection behind one API. Edits applied here keep the scroll window's
// height table in sync; callers never notify it directly.
type Engine struct {
	doc    *document.Document
	layout *layout.Engine
	window *scroll.Window
	cursor *cursor.Controller
	sel    *selection.Model

	metrics        layout.Provider
	scrollDuration time.Duration
	readOnly       bool

	// Creation-time settings consumed by New.
	initContent     string
	initWidth       float64
	initViewport    float64
	blinkInterval   time.Duration
	overscan        int
	estCharsPerLine int
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		scrollDuration: scroll.DefaultScrollDuration,
		overscan:       scroll.DefaultOverscan,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = fontmetrics.NewMono()
	}

	if e.initContent != "" {
		e.doc = document.NewFromString(e.initContent)
	} else {
		e.doc = document.New()
	}

	e.layout = layout.NewEngine(e.doc, e.metrics)
	if e.estCharsPerLine > 0 {
		e.layout.SetEstimatedCharsPerLine(e.estCharsPerLine)
	}
	if e.initWidth > 0 {
		e.layout.SetWrapWidth(e.initWidth)
	}

	e.window = scroll.NewWindow(e.doc, e.layout)
	e.window.SetOverscan(e.overscan)
	if e.initViewport > 0 {
		e.window.SetViewportHeight(e.initViewport)
	}

	e.cursor = cursor.NewController(e.doc, e.layout, e.window)
	if e.blinkInterval > 0 {
		e.cursor.SetBlinkInterval(e.blinkInterval)
	}
	e.sel = selection.NewModel(e.doc, e.cursor)

	e.window.MeasureVisible()
	return e
}

// Document returns the underlying document.
func (e *Engine) Document() *document.Document { return e.doc }

// Layout returns the layout engine.
func (e *Engine) Layout() *layout.Engine { return e.layout }

// Window returns the virtual scroll window.
func (e *Engine) Window() *scroll.Window { return e.window }

// Cursor returns the caret controller.
func (e *Engine) Cursor() *cursor.Controller { return e.cursor }

// Selection returns the selection model.
func (e *Engine) Selection() *selection.Model { return e.sel }

// ReadOnly reports whether write operations are rejected.
func (e *Engine) ReadOnly() bool { return e.readOnly }

// PlainText returns the whole document joined by newlines.
func (e *Engine) PlainText() string { return e.doc.PlainText() }

// Generation returns the document generation, bumped by every edit.
func (e *Engine) Generation() uint64 { return e.doc.Generation() }

// InsertText inserts text at the caret, first deleting any selection.
// Newlines and paragraph separators in the text become paragraph breaks.
// The caret lands after the inserted text.
func (e *Engine) InsertText(text string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if r, ok := e.sel.Range(); ok && !r.IsEmpty() {
		if err := e.deleteRange(r); err != nil {
			return err
		}
	}
	e.sel.Clear()
	if text == "" {
		return nil
	}

	pos := e.doc.Clamp(e.cursor.Position())
	parts := document.SplitParagraphs(text)

	if len(parts) == 1 {
		if err := e.doc.ReplaceRange(pos.Paragraph, pos.Offset, pos.Offset, text); err != nil {
			return err
		}
		e.window.ParagraphResized(pos.Paragraph)
		e.cursor.Set(document.Position{Paragraph: pos.Paragraph, Offset: pos.Offset + runeCount(parts[0])})
		return e.afterEdit()
	}

	if err := e.doc.Split(pos); err != nil {
		return err
	}
	e.window.ParagraphInserted(pos.Paragraph + 1)
	if err := e.doc.ReplaceRange(pos.Paragraph, pos.Offset, pos.Offset, parts[0]); err != nil {
		return err
	}
	e.window.ParagraphResized(pos.Paragraph)

	insertAt := pos.Paragraph + 1
	for _, mid := range parts[1 : len(parts)-1] {
		if err := e.doc.InsertParagraph(insertAt, mid); err != nil {
			return err
		}
		e.window.ParagraphInserted(insertAt)
		insertAt++
	}

	last := parts[len(parts)-1]
	if last != "" {
		if err := e.doc.ReplaceRange(insertAt, 0, 0, last); err != nil {
			return err
		}
	}
	e.window.ParagraphResized(insertAt)
	e.cursor.Set(document.Position{Paragraph: insertAt, Offset: runeCount(last)})
	return e.afterEdit()
}

// InsertParagraphBreak splits the caret's paragraph at the caret, leaving
// the caret at the start of the new paragraph. Any selection is deleted
// first.
func (e *Engine) InsertParagraphBreak() error {
	if e.readOnly {
		return ErrReadOnly
	}
	if r, ok := e.sel.Range(); ok && !r.IsEmpty() {
		if err := e.deleteRange(r); err != nil {
			return err
		}
	}
	e.sel.Clear()

	pos := e.doc.Clamp(e.cursor.Position())
	if err := e.doc.Split(pos); err != nil {
		return err
	}
	e.window.ParagraphResized(pos.Paragraph)
	e.window.ParagraphInserted(pos.Paragraph + 1)
	e.cursor.Set(document.Position{Paragraph: pos.Paragraph + 1})
	return e.afterEdit()
}

// DeleteBackward deletes the selection if one exists, otherwise the
// grapheme cluster before the caret. At a paragraph start it merges with
// the previous paragraph. No-op at the document start.
func (e *Engine) DeleteBackward() error {
	if e.readOnly {
		return ErrReadOnly
	}
	if r, ok := e.sel.Range(); ok && !r.IsEmpty() {
		if err := e.deleteRange(r); err != nil {
			return err
		}
		return e.afterEdit()
	}
	e.sel.Clear()

	pos := e.doc.Clamp(e.cursor.Position())
	if pos.Offset > 0 {
		start := document.PrevGraphemeBoundary(e.doc.Text(pos.Paragraph), pos.Offset)
		if err := e.deleteRange(document.Range{
			Start: document.Position{Paragraph: pos.Paragraph, Offset: start},
			End:   pos,
		}); err != nil {
			return err
		}
		return e.afterEdit()
	}
	if pos.Paragraph == 0 {
		return nil
	}
	prevLen := e.doc.Length(pos.Paragraph - 1)
	if err := e.doc.MergeWithNext(pos.Paragraph - 1); err != nil {
		return err
	}
	e.window.ParagraphRemoved(pos.Paragraph)
	e.window.ParagraphResized(pos.Paragraph - 1)
	e.cursor.Set(document.Position{Paragraph: pos.Paragraph - 1, Offset: prevLen})
	return e.afterEdit()
}

// DeleteForward deletes the selection if one exists, otherwise the
// grapheme cluster after the caret. At a paragraph end it merges with the
// next paragraph. No-op at the document end.
func (e *Engine) DeleteForward() error {
	if e.readOnly {
		return ErrReadOnly
	}
	if r, ok := e.sel.Range(); ok && !r.IsEmpty() {
		if err := e.deleteRange(r); err != nil {
			return err
		}
		return e.afterEdit()
	}
	e.sel.Clear()

	pos := e.doc.Clamp(e.cursor.Position())
	text := e.doc.Text(pos.Paragraph)
	if pos.Offset < e.doc.Length(pos.Paragraph) {
		end := document.NextGraphemeBoundary(text, pos.Offset)
		if err := e.deleteRange(document.Range{
			Start: pos,
			End:   document.Position{Paragraph: pos.Paragraph, Offset: end},
		}); err != nil {
			return err
		}
		return e.afterEdit()
	}
	if pos.Paragraph >= e.doc.ParagraphCount()-1 {
		return nil
	}
	if err := e.doc.MergeWithNext(pos.Paragraph); err != nil {
		return err
	}
	e.window.ParagraphRemoved(pos.Paragraph + 1)
	e.window.ParagraphResized(pos.Paragraph)
	e.cursor.Set(pos)
	return e.afterEdit()
}

// DeleteSelection deletes the selected span. Returns ErrNoSelection when
// nothing is selected.
func (e *Engine) DeleteSelection() error {
	if e.readOnly {
		return ErrReadOnly
	}
	r, ok := e.sel.Range()
	if !ok || r.IsEmpty() {
		return ErrNoSelection
	}
	if err := e.deleteRange(r); err != nil {
		return err
	}
	return e.afterEdit()
}

// deleteRange removes a normalized span, merging the boundary paragraphs
// when the span crosses them. The caret lands at the span start and the
// selection is cleared.
func (e *Engine) deleteRange(r document.Range) error {
	r = r.Normalize()
	r.Start = e.doc.Clamp(r.Start)
	r.End = e.doc.Clamp(r.End)

	if r.Start.Paragraph == r.End.Paragraph {
		if err := e.doc.ReplaceRange(r.Start.Paragraph, r.Start.Offset, r.End.Offset, ""); err != nil {
			return err
		}
		e.window.ParagraphResized(r.Start.Paragraph)
	} else {
		if err := e.doc.ReplaceRange(r.Start.Paragraph, r.Start.Offset, e.doc.Length(r.Start.Paragraph), ""); err != nil {
			return err
		}
		if err := e.doc.ReplaceRange(r.End.Paragraph, 0, r.End.Offset, ""); err != nil {
			return err
		}
		for p := r.Start.Paragraph + 1; p < r.End.Paragraph; p++ {
			if err := e.doc.RemoveParagraph(r.Start.Paragraph + 1); err != nil {
				return err
			}
			e.window.ParagraphRemoved(r.Start.Paragraph + 1)
		}
		if err := e.doc.MergeWithNext(r.Start.Paragraph); err != nil {
			return err
		}
		e.window.ParagraphRemoved(r.Start.Paragraph + 1)
		e.window.ParagraphResized(r.Start.Paragraph)
	}

	e.cursor.Set(r.Start)
	e.sel.Clear()
	return nil
}

// afterEdit keeps the viewport tracking the caret after a mutation.
func (e *Engine) afterEdit() error {
	e.window.EnsureVisible(e.cursor.Position().Paragraph)
	e.window.MeasureVisible()
	return nil
}

// Move collapses any selection and moves the caret. A collapsing left or
// right motion lands on the selection edge instead of moving past it.
func (e *Engine) Move(motion Motion) {
	if r, ok := e.sel.Range(); ok && !r.IsEmpty() {
		e.sel.Clear()
		switch motion {
		case MotionLeft:
			e.cursor.Set(r.Start)
			e.scrollToCursor()
			return
		case MotionRight:
			e.cursor.Set(r.End)
			e.scrollToCursor()
			return
		}
	}
	e.sel.Clear()
	e.applyMotion(motion)
	e.scrollToCursor()
}

// ExtendSelection grows or shrinks the selection by a caret motion,
// anchoring at the caret if no selection is active.
func (e *Engine) ExtendSelection(motion Motion) {
	e.sel.ExtendBy(motion)
	e.scrollToCursor()
}

func (e *Engine) applyMotion(motion Motion) {
	switch motion {
	case MotionLeft:
		e.cursor.MoveLeft()
	case MotionRight:
		e.cursor.MoveRight()
	case MotionWordLeft:
		e.cursor.MoveWordLeft()
	case MotionWordRight:
		e.cursor.MoveWordRight()
	case MotionUp:
		e.cursor.MoveUp()
	case MotionDown:
		e.cursor.MoveDown()
	case MotionLineStart:
		e.cursor.MoveToLineStart()
	case MotionLineEnd:
		e.cursor.MoveToLineEnd()
	case MotionPageUp:
		e.cursor.MovePageUp()
	case MotionPageDown:
		e.cursor.MovePageDown()
	case MotionDocStart:
		e.cursor.MoveToDocStart()
	case MotionDocEnd:
		e.cursor.MoveToDocEnd()
	}
}

// scrollToCursor brings the caret's paragraph into view and refreshes the
// measured heights around it.
func (e *Engine) scrollToCursor() {
	e.window.EnsureVisible(e.cursor.Position().Paragraph)
	e.window.MeasureVisible()
}

// Select places the selection explicitly: anchor fixed, caret at head.
func (e *Engine) Select(anchor, head document.Position) {
	e.sel.Set(anchor, head)
	e.scrollToCursor()
}

// SelectAll selects the whole document without scrolling.
func (e *Engine) SelectAll() {
	e.sel.SelectAll()
}

// ClearSelection drops the selection, leaving the caret in place.
func (e *Engine) ClearSelection() {
	e.sel.Clear()
}

// SelectedText returns the selected text with paragraph boundaries encoded
// as U+2029.
func (e *Engine) SelectedText() string {
	return e.sel.SelectedText()
}

// SelectWordAt selects the letter-or-number run around pos, or the single
// grapheme there when pos is not inside a word. Used for double-click.
func (e *Engine) SelectWordAt(pos document.Position) {
	pos = e.doc.Clamp(pos)
	runes := []rune(e.doc.Text(pos.Paragraph))
	if len(runes) == 0 {
		e.sel.Set(pos, pos)
		return
	}
	i := pos.Offset
	if i >= len(runes) {
		i = len(runes) - 1
	}
	if !isWordRune(runes[i]) {
		text := e.doc.Text(pos.Paragraph)
		end := document.NextGraphemeBoundary(text, i)
		e.sel.Set(document.Position{Paragraph: pos.Paragraph, Offset: i},
			document.Position{Paragraph: pos.Paragraph, Offset: end})
		return
	}
	start, end := i, i+1
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	e.sel.Set(document.Position{Paragraph: pos.Paragraph, Offset: start},
		document.Position{Paragraph: pos.Paragraph, Offset: end})
}

// SelectParagraphAt selects one whole paragraph. Used for triple-click.
func (e *Engine) SelectParagraphAt(index int) {
	if index < 0 || index >= e.doc.ParagraphCount() {
		return
	}
	e.sel.Set(document.Position{Paragraph: index},
		document.Position{Paragraph: index, Offset: e.doc.Length(index)})
}

// Resize sets the wrap width and viewport height together. A width change
// drops all cached geometry and falls back to estimated heights until
// paragraphs are measured again.
func (e *Engine) Resize(width, viewport float64) {
	widthChanged := width != e.layout.WrapWidth()
	e.layout.SetWrapWidth(width)
	e.window.SetViewportHeight(viewport)
	if widthChanged {
		for i := 0; i < e.doc.ParagraphCount(); i++ {
			e.window.ParagraphResized(i)
		}
	}
	e.window.MeasureVisible()
}

// ScrollTo jumps the viewport to the offset immediately.
func (e *Engine) ScrollTo(y float64) {
	e.window.SetScrollOffset(y)
	e.window.MeasureVisible()
}

// ScrollBy jumps the viewport by a delta immediately.
func (e *Engine) ScrollBy(dy float64) {
	e.window.ScrollBy(dy)
	e.window.MeasureVisible()
}

// SmoothScrollTo starts an animated scroll toward the offset using the
// configured duration. Retargeting restarts from the current offset.
func (e *Engine) SmoothScrollTo(y float64) {
	e.window.ScrollTo(y, e.scrollDuration)
}

// Tick advances the scroll animation by dt and reports whether the
// viewport moved. Call it from the owner's frame timer.
func (e *Engine) Tick(dt time.Duration) bool {
	moved := e.window.Tick(dt)
	if moved {
		e.window.MeasureVisible()
	}
	return moved
}

// PositionAtPoint hit-tests viewport coordinates: x from the wrap origin,
// y from the viewport top. Used for mouse clicks.
func (e *Engine) PositionAtPoint(x, y float64) document.Position {
	docY := e.window.ScrollOffset() + y
	idx := e.window.ParagraphAtY(docY)
	return e.layout.PositionForPoint(idx, docY-e.window.ParagraphY(idx), x)
}

// CaretViewPoint returns the caret's x position, its top y relative to the
// viewport, and its height. visible is false when the caret's line is
// outside the viewport.
func (e *Engine) CaretViewPoint() (x, y, height float64, visible bool) {
	pos := e.cursor.Position()
	cx, top, h := e.layout.CaretPoint(pos)
	docY := e.window.ParagraphY(pos.Paragraph) + top
	y = docY - e.window.ScrollOffset()
	visible = h > 0 && y+h > 0 && y < e.window.ViewportHeight()
	return cx, y, h, visible
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
