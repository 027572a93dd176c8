package document

import "fmt"

// Position identifies a caret location as a paragraph index plus a rune
// offset within that paragraph. Offset may equal the paragraph length,
// meaning "after the last character".
type Position struct {
	Paragraph int // 0-indexed paragraph
	Offset    int // 0-indexed rune offset, 0 <= Offset <= length
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Paragraph, p.Offset)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other
// in document order.
func (p Position) Compare(other Position) int {
	if p.Paragraph < other.Paragraph {
		return -1
	}
	if p.Paragraph > other.Paragraph {
		return 1
	}
	if p.Offset < other.Offset {
		return -1
	}
	if p.Offset > other.Offset {
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the document start position (0:0).
func (p Position) IsZero() bool {
	return p.Paragraph == 0 && p.Offset == 0
}

// Range is a pair of positions. Start and End carry no ordering guarantee;
// call Normalize for a range with Start <= End.
type Range struct {
	Start Position
	End   Position
}

// Normalize returns the range with Start and End in document order.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty returns true if the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the position falls inside the normalized range,
// end exclusive.
func (r Range) Contains(p Position) bool {
	n := r.Normalize()
	return !p.Before(n.Start) && p.Before(n.End)
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}
