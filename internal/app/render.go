package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/inkstone/internal/engine/document"
)

var (
	styleText     = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Reverse(true)
)

// render draws the visible slice of the document and places the caret.
func (a *App) render() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()

	doc := a.eng.Document()
	win := a.eng.Window()
	lay := a.eng.Layout()
	offset := win.ScrollOffset()

	selRange, hasSel := a.eng.Selection().Range()

	first, last := win.VisibleRange()
	for i := first; i <= last && i < doc.ParagraphCount(); i++ {
		geo := lay.Geometry(i)
		if geo.IsEmpty() {
			continue
		}
		runes := []rune(doc.Text(i))
		top := win.ParagraphY(i)

		selStart, selEnd := -1, -1
		if hasSel {
			selStart, selEnd = selectedSpan(selRange, i, len(runes))
		}

		for _, ln := range geo.Lines {
			row := int(top + ln.Top - offset)
			if row < 0 || row >= a.height {
				continue
			}
			col := 0
			for off := ln.Start; off < ln.End && off < len(runes); off++ {
				style := styleText
				if off >= selStart && off < selEnd {
					style = styleSelected
				}
				r := runes[off]
				if r == '\t' {
					r = ' '
				}
				a.screen.SetContent(col, row, r, nil, style)
				col += uniseg.StringWidth(string(runes[off]))
			}
			// An empty paragraph inside the selection still shows a
			// highlighted cell so the user can see it is included.
			if len(runes) == 0 && hasSel && selRange.Contains(document.Position{Paragraph: i}) {
				a.screen.SetContent(0, row, ' ', nil, styleSelected)
			}
		}
	}

	cx, cy, _, visible := a.eng.CaretViewPoint()
	if visible && a.eng.Cursor().BlinkVisible() {
		a.screen.ShowCursor(int(cx), int(cy))
	} else {
		a.screen.HideCursor()
	}
	a.screen.Show()
}

// selectedSpan returns the half-open rune span of paragraph index covered by
// the selection, or (-1, -1) when the paragraph is outside it. Paragraphs
// strictly inside a multi-paragraph selection are covered end to end.
func selectedSpan(r document.Range, index, length int) (int, int) {
	if index < r.Start.Paragraph || index > r.End.Paragraph {
		return -1, -1
	}
	start, end := 0, length
	if index == r.Start.Paragraph {
		start = r.Start.Offset
	}
	if index == r.End.Paragraph {
		end = r.End.Offset
	}
	return start, end
}
