package document

// StyleID identifies a character style registered by the application.
// The zero value is the default style.
type StyleID uint16

// StyleRun marks a half-open rune range [Start, End) of a paragraph as
// carrying a style. Runs are kept sorted by Start and non-overlapping.
type StyleRun struct {
	Start int
	End   int
	Style StyleID
}

// Len returns the number of runes covered by the run.
func (r StyleRun) Len() int {
	return r.End - r.Start
}

// Paragraph is a single index-addressed unit of document content: a run of
// text with optional style spans. Paragraphs are owned by a Document and
// mutated only through it.
type Paragraph struct {
	text    string
	runes   int // cached rune length of text
	runs    []StyleRun
	gen     uint64 // bumped on every mutation, unique across the document
}

func newParagraph(text string, gen uint64) *Paragraph {
	return &Paragraph{
		text:  text,
		runes: runeLen(text),
		gen:   gen,
	}
}

// Text returns the paragraph's text.
func (p *Paragraph) Text() string {
	return p.text
}

// Length returns the paragraph length in runes.
func (p *Paragraph) Length() int {
	return p.runes
}

// Runs returns the paragraph's style runs. The returned slice is shared;
// callers must not modify it.
func (p *Paragraph) Runs() []StyleRun {
	return p.runs
}

// Generation returns the paragraph's mutation generation. Layout caches key
// on this value; any edit produces a new generation.
func (p *Paragraph) Generation() uint64 {
	return p.gen
}

// StyleAt returns the style covering the given rune offset.
func (p *Paragraph) StyleAt(offset int) StyleID {
	for _, r := range p.runs {
		if offset >= r.Start && offset < r.End {
			return r.Style
		}
	}
	return 0
}

// slice returns the text between two rune offsets. Offsets must be valid.
func (p *Paragraph) slice(start, end int) string {
	b := p.text[runeIndex(p.text, start):runeIndex(p.text, end)]
	return b
}

// runeLen counts the runes in s.
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// runeIndex converts a rune offset into a byte index of s. Offsets past the
// end map to len(s).
func runeIndex(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == offset {
			return i
		}
		n++
	}
	return len(s)
}

// shiftRuns applies a text edit over [start, end) replaced by insertLen
// runes to the paragraph's style runs. Offsets map through the edit: those
// before it are untouched, those after it shift by the length delta, those
// inside it collapse to the edit point. A run spanning the whole edit
// absorbs the inserted text. Runs that collapse to zero length are dropped.
func shiftRuns(runs []StyleRun, start, end, insertLen int) []StyleRun {
	delta := insertLen - (end - start)
	mapOffset := func(o int) int {
		switch {
		case o <= start:
			return o
		case o >= end:
			return o + delta
		default:
			return start
		}
	}
	out := runs[:0]
	for _, r := range runs {
		r.Start = mapOffset(r.Start)
		r.End = mapOffset(r.End)
		if r.End > r.Start {
			out = append(out, r)
		}
	}
	return out
}

// splitRuns partitions runs at a rune offset into runs for the left and
// right halves. Right-half runs are rebased to start at zero.
func splitRuns(runs []StyleRun, offset int) (left, right []StyleRun) {
	for _, r := range runs {
		if r.End <= offset {
			left = append(left, r)
			continue
		}
		if r.Start >= offset {
			right = append(right, StyleRun{Start: r.Start - offset, End: r.End - offset, Style: r.Style})
			continue
		}
		left = append(left, StyleRun{Start: r.Start, End: offset, Style: r.Style})
		right = append(right, StyleRun{Start: 0, End: r.End - offset, Style: r.Style})
	}
	return left, right
}

// mergeRuns appends the runs of a following paragraph onto the runs of the
// preceding one, rebasing them by the preceding paragraph's length.
func mergeRuns(left []StyleRun, right []StyleRun, leftLen int) []StyleRun {
	out := append([]StyleRun(nil), left...)
	for _, r := range right {
		out = append(out, StyleRun{Start: r.Start + leftLen, End: r.End + leftLen, Style: r.Style})
	}
	return out
}
