// Package document implements the in-memory document model: an ordered
// sequence of paragraphs addressed by index. It is the sole mutation path
// for text; layout, scrolling and navigation consume it read-only and key
// their caches on its generation counters.
package document

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Errors returned by document mutation operations.
var (
	// ErrParagraphOutOfRange indicates a paragraph index outside [0, count).
	ErrParagraphOutOfRange = errors.New("paragraph index out of range")

	// ErrOffsetOutOfRange indicates a rune offset outside [0, length].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)

// ParagraphSeparator is the marker joining paragraphs in multi-paragraph
// selected text (Unicode paragraph separator, U+2029).
const ParagraphSeparator = '\u2029'

// Document owns the ordered paragraph sequence. A document never has zero
// paragraphs: an "empty" document holds exactly one empty paragraph so that
// position arithmetic stays well-defined.
//
// Document is not safe for concurrent use; all access runs on the
// orchestrator's event thread.
type Document struct {
	id         uuid.UUID
	paragraphs []*Paragraph
	generation uint64 // bumped on every mutation
	nextGen    uint64 // source of per-paragraph generations
}

// New creates a document holding a single empty paragraph.
func New() *Document {
	d := &Document{id: uuid.New()}
	d.paragraphs = []*Paragraph{newParagraph("", d.takeGen())}
	return d
}

// SplitParagraphs splits plain text into paragraph strings. CR/LF pairs,
// bare carriage returns, line feeds, and Unicode paragraph separators all
// delimit paragraphs.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, string(ParagraphSeparator), "\n")
	return strings.Split(text, "\n")
}

// NewFromString creates a document from plain text, splitting paragraphs on
// newlines and Unicode paragraph separators.
func NewFromString(text string) *Document {
	d := &Document{id: uuid.New()}
	split := SplitParagraphs(text)
	d.paragraphs = make([]*Paragraph, 0, len(split))
	for _, s := range split {
		d.paragraphs = append(d.paragraphs, newParagraph(s, d.takeGen()))
	}
	if len(d.paragraphs) == 0 {
		d.paragraphs = []*Paragraph{newParagraph("", d.takeGen())}
	}
	return d
}

// ID returns the document's unique identity.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// ParagraphCount returns the number of paragraphs. Always >= 1.
func (d *Document) ParagraphCount() int {
	return len(d.paragraphs)
}

// Generation returns the document-wide mutation counter. Consumers compare
// it against a remembered value to detect that any edit happened.
func (d *Document) Generation() uint64 {
	return d.generation
}

// ParagraphGeneration returns the mutation generation of one paragraph, or
// zero for an invalid index. Generations are unique across the document's
// lifetime, so a cache entry keyed on one can never falsely match after
// paragraphs shift indices.
func (d *Document) ParagraphGeneration(index int) uint64 {
	if index < 0 || index >= len(d.paragraphs) {
		return 0
	}
	return d.paragraphs[index].gen
}

// Text returns the text of the paragraph at index, or "" for an invalid
// index.
func (d *Document) Text(index int) string {
	if index < 0 || index >= len(d.paragraphs) {
		return ""
	}
	return d.paragraphs[index].text
}

// Length returns the rune length of the paragraph at index, or 0 for an
// invalid index.
func (d *Document) Length(index int) int {
	if index < 0 || index >= len(d.paragraphs) {
		return 0
	}
	return d.paragraphs[index].runes
}

// Runs returns the style runs of the paragraph at index. The slice is
// shared; callers must not modify it.
func (d *Document) Runs(index int) []StyleRun {
	if index < 0 || index >= len(d.paragraphs) {
		return nil
	}
	return d.paragraphs[index].runs
}

// StyleAt returns the style covering a position, or the default style for
// an invalid position.
func (d *Document) StyleAt(pos Position) StyleID {
	if pos.Paragraph < 0 || pos.Paragraph >= len(d.paragraphs) {
		return 0
	}
	return d.paragraphs[pos.Paragraph].StyleAt(pos.Offset)
}

// TextRange returns the substring of one paragraph between two rune
// offsets, clamped to the paragraph bounds.
func (d *Document) TextRange(index, start, end int) string {
	if index < 0 || index >= len(d.paragraphs) || end <= start {
		return ""
	}
	p := d.paragraphs[index]
	if start < 0 {
		start = 0
	}
	if end > p.runes {
		end = p.runes
	}
	if end <= start {
		return ""
	}
	return p.slice(start, end)
}

// PlainText returns the whole document joined by newlines.
func (d *Document) PlainText() string {
	var b strings.Builder
	for i, p := range d.paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.text)
	}
	return b.String()
}

// Clamp forces a possibly stale position back into the document bounds:
// paragraph into [0, count) and offset into [0, length]. Every consumer
// clamps through here before using a stored position.
func (d *Document) Clamp(pos Position) Position {
	if pos.Paragraph < 0 {
		pos.Paragraph = 0
	}
	if pos.Paragraph >= len(d.paragraphs) {
		pos.Paragraph = len(d.paragraphs) - 1
	}
	if pos.Offset < 0 {
		pos.Offset = 0
	}
	if max := d.paragraphs[pos.Paragraph].runes; pos.Offset > max {
		pos.Offset = max
	}
	return pos
}

// End returns the position after the last character of the last paragraph.
func (d *Document) End() Position {
	last := len(d.paragraphs) - 1
	return Position{Paragraph: last, Offset: d.paragraphs[last].runes}
}

// InsertParagraph inserts a new paragraph so that it occupies the given
// index. index == ParagraphCount() appends.
func (d *Document) InsertParagraph(index int, text string) error {
	if index < 0 || index > len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	p := newParagraph(text, d.takeGen())
	d.paragraphs = append(d.paragraphs, nil)
	copy(d.paragraphs[index+1:], d.paragraphs[index:])
	d.paragraphs[index] = p
	d.bump()
	return nil
}

// RemoveParagraph removes the paragraph at index. Removing the only
// paragraph resets it to empty instead, preserving the never-zero
// invariant.
func (d *Document) RemoveParagraph(index int) error {
	if index < 0 || index >= len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	if len(d.paragraphs) == 1 {
		d.paragraphs[0] = newParagraph("", d.takeGen())
		d.bump()
		return nil
	}
	d.paragraphs = append(d.paragraphs[:index], d.paragraphs[index+1:]...)
	d.bump()
	return nil
}

// Split divides the paragraph at pos.Paragraph into two at pos.Offset. The
// left half keeps the index; the right half is inserted immediately after.
// Style runs are partitioned across the split.
func (d *Document) Split(pos Position) error {
	if pos.Paragraph < 0 || pos.Paragraph >= len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	p := d.paragraphs[pos.Paragraph]
	if pos.Offset < 0 || pos.Offset > p.runes {
		return ErrOffsetOutOfRange
	}
	leftRuns, rightRuns := splitRuns(p.runs, pos.Offset)
	left := newParagraph(p.slice(0, pos.Offset), d.takeGen())
	left.runs = leftRuns
	right := newParagraph(p.slice(pos.Offset, p.runes), d.takeGen())
	right.runs = rightRuns

	d.paragraphs[pos.Paragraph] = left
	d.paragraphs = append(d.paragraphs, nil)
	copy(d.paragraphs[pos.Paragraph+2:], d.paragraphs[pos.Paragraph+1:])
	d.paragraphs[pos.Paragraph+1] = right
	d.bump()
	return nil
}

// MergeWithNext joins the paragraph at index with its successor. The
// successor's style runs are rebased onto the merged paragraph.
func (d *Document) MergeWithNext(index int) error {
	if index < 0 || index >= len(d.paragraphs)-1 {
		return ErrParagraphOutOfRange
	}
	left := d.paragraphs[index]
	right := d.paragraphs[index+1]
	merged := newParagraph(left.text+right.text, d.takeGen())
	merged.runs = mergeRuns(left.runs, right.runs, left.runes)
	d.paragraphs[index] = merged
	d.paragraphs = append(d.paragraphs[:index+1], d.paragraphs[index+2:]...)
	d.bump()
	return nil
}

// ReplaceRange replaces the runes [start, end) of one paragraph with text.
// An empty range inserts; empty text deletes. Style runs shift and clamp
// around the edit.
func (d *Document) ReplaceRange(index, start, end int, text string) error {
	if index < 0 || index >= len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	p := d.paragraphs[index]
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > p.runes {
		return ErrOffsetOutOfRange
	}
	next := newParagraph(p.slice(0, start)+text+p.slice(end, p.runes), d.takeGen())
	next.runs = shiftRuns(append([]StyleRun(nil), p.runs...), start, end, runeLen(text))
	d.paragraphs[index] = next
	d.bump()
	return nil
}

// SetRuns replaces the style runs of one paragraph. Runs must be sorted and
// within the paragraph bounds; out-of-bounds runs are clamped.
func (d *Document) SetRuns(index int, runs []StyleRun) error {
	if index < 0 || index >= len(d.paragraphs) {
		return ErrParagraphOutOfRange
	}
	p := d.paragraphs[index]
	clamped := make([]StyleRun, 0, len(runs))
	for _, r := range runs {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > p.runes {
			r.End = p.runes
		}
		if r.End > r.Start {
			clamped = append(clamped, r)
		}
	}
	next := newParagraph(p.text, d.takeGen())
	next.runs = clamped
	d.paragraphs[index] = next
	d.bump()
	return nil
}

func (d *Document) bump() {
	d.generation++
}

func (d *Document) takeGen() uint64 {
	d.nextGen++
	return d.nextGen
}
