// Package fontmetrics provides text measurement providers for the layout
// engine: fixed-width cell metrics for terminal rendering and TrueType
// metrics for proportional fonts.
package fontmetrics

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/inkstone/internal/engine/document"
)

// Mono measures text in fixed-width cells, the way a terminal renders it.
// East Asian wide runes and wide emoji count as two cells.
type Mono struct {
	cellWidth  float64
	lineHeight float64
}

// NewMono creates cell metrics with one-unit cells and one-unit lines,
// matching terminal character coordinates.
func NewMono() *Mono {
	return &Mono{cellWidth: 1, lineHeight: 1}
}

// NewMonoSized creates cell metrics with explicit cell width and line
// height, for pixel-space layouts over a monospace font.
func NewMonoSized(cellWidth, lineHeight float64) *Mono {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return &Mono{cellWidth: cellWidth, lineHeight: lineHeight}
}

// Measure returns the advance width of text in cells times the cell
// width. Styles do not change monospace advances.
func (m *Mono) Measure(text string, _ document.StyleID) float64 {
	return float64(uniseg.StringWidth(text)) * m.cellWidth
}

// LineHeight returns the fixed line height.
func (m *Mono) LineHeight(document.StyleID) float64 {
	return m.lineHeight
}

// CellWidth returns the width of one cell.
func (m *Mono) CellWidth() float64 {
	return m.cellWidth
}
