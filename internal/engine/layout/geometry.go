package layout

// Line is one visually wrapped row of a paragraph: a half-open rune range
// [Start, End) plus its vertical placement within the paragraph. Trailing
// whitespace absorbed by the break belongs to the line it follows.
type Line struct {
	Start  int     // first rune of the line
	End    int     // one past the last rune
	Top    float64 // vertical offset within the paragraph
	Height float64
	Width  float64 // measured advance width of the line's text
}

// Contains reports whether a rune offset falls on this line. The offset
// equal to End belongs to the next line, except on a paragraph's last line.
func (l Line) Contains(offset int) bool {
	return offset >= l.Start && offset < l.End
}

// Geometry is the wrapped line layout of a single paragraph. It is derived
// state owned by the layout engine: recomputed on text or width change,
// never persisted.
type Geometry struct {
	Lines  []Line
	Height float64 // sum of line heights
}

// IsEmpty reports whether the geometry holds no lines, which happens only
// before a wrap width is known.
func (g *Geometry) IsEmpty() bool {
	return len(g.Lines) == 0
}

// LineIndexForOffset returns the index of the line containing the rune
// offset. Offsets at a wrap boundary resolve to the following line; offsets
// at or past the paragraph end resolve to the last line. Returns 0 for
// empty geometry.
func (g *Geometry) LineIndexForOffset(offset int) int {
	if len(g.Lines) == 0 {
		return 0
	}
	for i, ln := range g.Lines {
		if offset < ln.End {
			if offset >= ln.Start {
				return i
			}
			return i // offset before line start cannot happen with contiguous lines
		}
	}
	return len(g.Lines) - 1
}

// LineForOffset returns the line containing the rune offset. ok is false
// for empty geometry.
func (g *Geometry) LineForOffset(offset int) (Line, bool) {
	if len(g.Lines) == 0 {
		return Line{}, false
	}
	return g.Lines[g.LineIndexForOffset(offset)], true
}

// LineIndexAtY returns the index of the line covering the vertical offset y
// (relative to the paragraph top), clamped to the first/last line.
func (g *Geometry) LineIndexAtY(y float64) int {
	if len(g.Lines) == 0 {
		return 0
	}
	for i, ln := range g.Lines {
		if y < ln.Top+ln.Height {
			return i
		}
	}
	return len(g.Lines) - 1
}
