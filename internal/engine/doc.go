// Package engine is the facade over the text-editing core: the paragraph
// document, the layout engine, the virtual scroll window, the caret, and
// the selection. It wires the five together so callers get a single
// consistent API for editing, navigation, and scrolling.
//
// # Architecture
//
//	document  - paragraph sequence, style runs, generation counters
//	layout    - greedy line wrap, per-paragraph geometry cache, hit testing
//	scroll    - viewport over estimated/measured heights, animated offset
//	cursor    - caret motion by grapheme, word, line, page, document
//	selection - anchor plus caret span, paragraph-separator joined text
//
// The document is the single source of truth; layout geometry and scroll
// heights are derived state, invalidated by paragraph generation and
// recomputed lazily. The facade owns the derived-state bookkeeping: every
// edit it applies also notifies the scroll window of inserted, removed,
// and resized paragraphs, so callers never touch that protocol directly.
//
// # Concurrency
//
// The engine is single-threaded. All calls must come from one goroutine,
// typically the UI event loop; there is no internal locking. Animation and
// caret blink advance only through explicit Tick calls from that same
// goroutine, which keeps rendering deterministic and testable.
package engine
