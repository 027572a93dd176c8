package engine

import (
	"time"

	"github.com/dshills/inkstone/internal/engine/layout"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial document content. Line feeds, CR/LF pairs,
// and paragraph separators all delimit paragraphs.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithMetrics sets the text measurement provider. Defaults to monospace
// cell metrics when unset.
func WithMetrics(p layout.Provider) Option {
	return func(e *Engine) {
		if p != nil {
			e.metrics = p
		}
	}
}

// WithWrapWidth sets the initial available width for line wrapping.
// Without it the engine starts in the layout-unavailable state until
// Resize is called.
func WithWrapWidth(width float64) Option {
	return func(e *Engine) {
		e.initWidth = width
	}
}

// WithViewportHeight sets the initial viewport height.
func WithViewportHeight(h float64) Option {
	return func(e *Engine) {
		e.initViewport = h
	}
}

// WithBlinkInterval sets the caret blink half-period.
func WithBlinkInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.blinkInterval = d
	}
}

// WithOverscan sets how many paragraphs beyond the visible range are
// prepared for rendering.
func WithOverscan(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.overscan = n
		}
	}
}

// WithEstimatedCharsPerLine tunes the height estimate used for paragraphs
// that have not been laid out yet.
func WithEstimatedCharsPerLine(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.estCharsPerLine = n
		}
	}
}

// WithScrollDuration sets the duration of animated scrolls started by
// SmoothScrollTo.
func WithScrollDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.scrollDuration = d
		}
	}
}

// WithReadOnly creates a read-only engine. Write operations return
// ErrReadOnly; navigation and selection still work.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
