package engine

import (
	"errors"

	"github.com/dshills/inkstone/internal/engine/document"
)

// Errors returned by engine operations. The document's range errors are
// re-exported so callers can match them without importing the subpackage.
var (
	// ErrParagraphOutOfRange indicates a paragraph index outside the document.
	ErrParagraphOutOfRange = document.ErrParagraphOutOfRange

	// ErrOffsetOutOfRange indicates a rune offset outside its paragraph.
	ErrOffsetOutOfRange = document.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates a range with end before start.
	ErrRangeInvalid = document.ErrRangeInvalid

	// ErrReadOnly indicates a write was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrNoSelection indicates a selection operation with nothing selected.
	ErrNoSelection = errors.New("no selection")
)
