// Package cursor moves a caret through a document by grapheme, word, line,
// page, and document jumps, tracking the preferred column across vertical
// motion and the caret blink phase.
package cursor

import (
	"time"
	"unicode"

	"github.com/dshills/inkstone/internal/engine/document"
	"github.com/dshills/inkstone/internal/engine/layout"
	"github.com/dshills/inkstone/internal/engine/scroll"
)

// DefaultBlinkInterval is the caret blink half-period.
const DefaultBlinkInterval = 500 * time.Millisecond

// Controller owns the caret position. Horizontal moves step by grapheme
// cluster so combining sequences and emoji move as units; vertical moves
// aim for the preferred column captured when the vertical run started.
type Controller struct {
	doc    *document.Document
	layout *layout.Engine
	window *scroll.Window

	pos document.Position

	preferredX    float64
	hasPreferredX bool

	blinkVisible  bool
	blinkInterval time.Duration
}

// NewController creates a controller with the caret at the document start.
func NewController(doc *document.Document, eng *layout.Engine, win *scroll.Window) *Controller {
	return &Controller{
		doc:           doc,
		layout:        eng,
		window:        win,
		blinkVisible:  true,
		blinkInterval: DefaultBlinkInterval,
	}
}

// Position returns the caret position.
func (c *Controller) Position() document.Position {
	return c.pos
}

// Set places the caret at pos, clamped into the document. The preferred
// column is dropped and the blink phase resets to visible.
func (c *Controller) Set(pos document.Position) {
	c.pos = c.doc.Clamp(pos)
	c.hasPreferredX = false
	c.ResetBlink()
}

// MoveLeft steps one grapheme cluster left, crossing to the end of the
// previous paragraph at a paragraph start. No-op at the document start.
func (c *Controller) MoveLeft() {
	if c.pos.IsZero() {
		return
	}
	if c.pos.Offset > 0 {
		c.Set(document.Position{
			Paragraph: c.pos.Paragraph,
			Offset:    document.PrevGraphemeBoundary(c.doc.Text(c.pos.Paragraph), c.pos.Offset),
		})
		return
	}
	if c.pos.Paragraph > 0 {
		p := c.pos.Paragraph - 1
		c.Set(document.Position{Paragraph: p, Offset: c.doc.Length(p)})
	}
}

// MoveRight steps one grapheme cluster right, crossing to the start of the
// next paragraph at a paragraph end. No-op at the document end.
func (c *Controller) MoveRight() {
	if c.pos.Offset < c.doc.Length(c.pos.Paragraph) {
		c.Set(document.Position{
			Paragraph: c.pos.Paragraph,
			Offset:    document.NextGraphemeBoundary(c.doc.Text(c.pos.Paragraph), c.pos.Offset),
		})
		return
	}
	if c.pos.Paragraph < c.doc.ParagraphCount()-1 {
		c.Set(document.Position{Paragraph: c.pos.Paragraph + 1})
	}
}

// MoveWordLeft moves to the start of the current or previous word. Words
// are maximal letter-or-number runs. At a paragraph start the caret
// crosses to the previous paragraph end.
func (c *Controller) MoveWordLeft() {
	if c.pos.Offset == 0 {
		if c.pos.Paragraph > 0 {
			p := c.pos.Paragraph - 1
			c.Set(document.Position{Paragraph: p, Offset: c.doc.Length(p)})
		}
		return
	}
	runes := []rune(c.doc.Text(c.pos.Paragraph))
	i := c.pos.Offset
	for i > 0 && !isWordRune(runes[i-1]) {
		i--
	}
	for i > 0 && isWordRune(runes[i-1]) {
		i--
	}
	c.Set(document.Position{Paragraph: c.pos.Paragraph, Offset: i})
}

// MoveWordRight moves to the start of the next word, or the paragraph end
// when no word follows. At a paragraph end the caret crosses to the next
// paragraph start.
func (c *Controller) MoveWordRight() {
	length := c.doc.Length(c.pos.Paragraph)
	if c.pos.Offset >= length {
		if c.pos.Paragraph < c.doc.ParagraphCount()-1 {
			c.Set(document.Position{Paragraph: c.pos.Paragraph + 1})
		}
		return
	}
	runes := []rune(c.doc.Text(c.pos.Paragraph))
	i := c.pos.Offset
	for i < len(runes) && isWordRune(runes[i]) {
		i++
	}
	for i < len(runes) && !isWordRune(runes[i]) {
		i++
	}
	c.Set(document.Position{Paragraph: c.pos.Paragraph, Offset: i})
}

// MoveUp moves one visual line up, aiming for the preferred column. From
// the first line of the first paragraph the caret jumps to the document
// start.
func (c *Controller) MoveUp() {
	c.moveVertical(-1)
}

// MoveDown moves one visual line down, aiming for the preferred column.
// From the last line of the last paragraph the caret jumps to the
// document end.
func (c *Controller) MoveDown() {
	c.moveVertical(1)
}

func (c *Controller) moveVertical(dir int) {
	x := c.capturePreferredX()
	geom := c.layout.Geometry(c.pos.Paragraph)
	if geom.IsEmpty() {
		// Layout unavailable: fall back to whole-paragraph steps.
		c.setKeepingPreferredX(c.doc.Clamp(document.Position{
			Paragraph: c.pos.Paragraph + dir,
			Offset:    c.pos.Offset,
		}))
		return
	}

	line := geom.LineIndexForOffset(c.pos.Offset)
	target := line + dir
	if target >= 0 && target < len(geom.Lines) {
		c.setKeepingPreferredX(document.Position{
			Paragraph: c.pos.Paragraph,
			Offset:    c.layout.OffsetInLine(c.pos.Paragraph, target, x),
		})
		return
	}

	if dir < 0 {
		if c.pos.Paragraph == 0 {
			c.setKeepingPreferredX(document.Position{})
			return
		}
		prev := c.pos.Paragraph - 1
		prevGeom := c.layout.Geometry(prev)
		c.setKeepingPreferredX(document.Position{
			Paragraph: prev,
			Offset:    c.layout.OffsetInLine(prev, len(prevGeom.Lines)-1, x),
		})
		return
	}

	if c.pos.Paragraph == c.doc.ParagraphCount()-1 {
		c.setKeepingPreferredX(c.doc.End())
		return
	}
	next := c.pos.Paragraph + 1
	c.setKeepingPreferredX(document.Position{
		Paragraph: next,
		Offset:    c.layout.OffsetInLine(next, 0, x),
	})
}

// MoveToLineStart moves to the first offset of the caret's visual line.
func (c *Controller) MoveToLineStart() {
	geom := c.layout.Geometry(c.pos.Paragraph)
	if ln, ok := geom.LineForOffset(c.pos.Offset); ok {
		c.Set(document.Position{Paragraph: c.pos.Paragraph, Offset: ln.Start})
		return
	}
	c.Set(document.Position{Paragraph: c.pos.Paragraph})
}

// MoveToLineEnd moves past the last rune of the caret's visual line.
func (c *Controller) MoveToLineEnd() {
	geom := c.layout.Geometry(c.pos.Paragraph)
	if ln, ok := geom.LineForOffset(c.pos.Offset); ok {
		c.Set(document.Position{Paragraph: c.pos.Paragraph, Offset: ln.End})
		return
	}
	c.Set(document.Position{Paragraph: c.pos.Paragraph, Offset: c.doc.Length(c.pos.Paragraph)})
}

// MoveToDocStart jumps to the document start and snaps the scroll offset
// to the top.
func (c *Controller) MoveToDocStart() {
	c.Set(document.Position{})
	c.window.SetScrollOffset(0)
}

// MoveToDocEnd jumps past the last rune of the last paragraph and snaps
// the scroll offset to the bottom.
func (c *Controller) MoveToDocEnd() {
	c.Set(c.doc.End())
	c.window.SetScrollOffset(c.window.MaxScrollOffset())
}

// MovePageUp moves the caret one viewport height up through the document,
// hit testing at the preferred column, and scrolls the view by the same
// distance.
func (c *Controller) MovePageUp() {
	c.movePage(-1)
}

// MovePageDown moves the caret one viewport height down through the
// document, hit testing at the preferred column, and scrolls the view by
// the same distance.
func (c *Controller) MovePageDown() {
	c.movePage(1)
}

func (c *Controller) movePage(dir int) {
	page := c.window.ViewportHeight()
	if page <= 0 {
		return
	}
	x := c.capturePreferredX()

	_, top, _ := c.layout.CaretPoint(c.pos)
	caretY := c.window.ParagraphY(c.pos.Paragraph) + top
	targetY := caretY + float64(dir)*page

	switch {
	case targetY < 0:
		c.setKeepingPreferredX(document.Position{})
	case targetY >= c.window.TotalHeight():
		c.setKeepingPreferredX(c.doc.End())
	default:
		idx := c.window.ParagraphAtY(targetY)
		yInPara := targetY - c.window.ParagraphY(idx)
		c.setKeepingPreferredX(c.layout.PositionForPoint(idx, yInPara, x))
	}

	c.window.ScrollBy(float64(dir) * page)
}

// capturePreferredX returns the column vertical motion aims for, capturing
// the caret's current column on the first move of a run.
func (c *Controller) capturePreferredX() float64 {
	if !c.hasPreferredX {
		x, _, _ := c.layout.CaretPoint(c.pos)
		c.preferredX = x
		c.hasPreferredX = true
	}
	return c.preferredX
}

// setKeepingPreferredX moves the caret without dropping the preferred
// column, so a vertical run through short lines keeps aiming at the
// original column.
func (c *Controller) setKeepingPreferredX(pos document.Position) {
	x, has := c.preferredX, c.hasPreferredX
	c.Set(pos)
	c.preferredX, c.hasPreferredX = x, has
}

// BlinkVisible reports whether the caret is in the visible phase.
func (c *Controller) BlinkVisible() bool {
	return c.blinkVisible
}

// ToggleBlink flips the blink phase. Driven by the owner's timer.
func (c *Controller) ToggleBlink() {
	c.blinkVisible = !c.blinkVisible
}

// ResetBlink forces the caret visible, restarting the blink cycle. Called
// on every caret move so the caret never blinks away mid-motion.
func (c *Controller) ResetBlink() {
	c.blinkVisible = true
}

// BlinkInterval returns the blink half-period.
func (c *Controller) BlinkInterval() time.Duration {
	return c.blinkInterval
}

// SetBlinkInterval sets the blink half-period; non-positive values are
// ignored.
func (c *Controller) SetBlinkInterval(d time.Duration) {
	if d > 0 {
		c.blinkInterval = d
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
