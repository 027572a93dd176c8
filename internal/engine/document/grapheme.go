package document

import "github.com/rivo/uniseg"

// NextGraphemeBoundary returns the rune offset of the first grapheme
// boundary after off, so combining sequences and emoji are crossed as
// units. An offset inside a cluster resolves to that cluster's end.
// Returns off at or past the end of text.
func NextGraphemeBoundary(text string, off int) int {
	pos := 0
	rest := text
	for rest != "" {
		cluster, tail, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		next := pos + runeLen(cluster)
		if next > off {
			return next
		}
		pos = next
		rest = tail
	}
	return pos
}

// PrevGraphemeBoundary returns the rune offset of the last grapheme
// boundary before off. Returns 0 at the start of text.
func PrevGraphemeBoundary(text string, off int) int {
	prev := 0
	pos := 0
	rest := text
	for pos < off && rest != "" {
		cluster, tail, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		next := pos + runeLen(cluster)
		if next >= off {
			break
		}
		prev = next
		pos = next
		rest = tail
	}
	return prev
}
