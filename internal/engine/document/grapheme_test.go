package document

import "testing"

func TestNextGraphemeBoundary(t *testing.T) {
	// "e\u0301x" is e + combining acute (one cluster, runes 0-1), then x.
	tests := []struct {
		text string
		off  int
		want int
	}{
		{"abc", 0, 1},
		{"abc", 2, 3},
		{"abc", 3, 3},
		{"", 0, 0},
		{"e\u0301x", 0, 2},
		{"e\u0301x", 1, 2}, // inside the cluster: its own end, not the next
		{"e\u0301x", 2, 3},
		{"e\u0301x", 3, 3},
	}
	for _, tt := range tests {
		if got := NextGraphemeBoundary(tt.text, tt.off); got != tt.want {
			t.Errorf("NextGraphemeBoundary(%q, %d) = %d, want %d", tt.text, tt.off, got, tt.want)
		}
	}
}

func TestPrevGraphemeBoundary(t *testing.T) {
	tests := []struct {
		text string
		off  int
		want int
	}{
		{"abc", 3, 2},
		{"abc", 1, 0},
		{"abc", 0, 0},
		{"", 0, 0},
		{"e\u0301x", 3, 2},
		{"e\u0301x", 2, 0},
		{"e\u0301x", 1, 0}, // inside the cluster: back to its start
		{"e\u0301x", 0, 0},
	}
	for _, tt := range tests {
		if got := PrevGraphemeBoundary(tt.text, tt.off); got != tt.want {
			t.Errorf("PrevGraphemeBoundary(%q, %d) = %d, want %d", tt.text, tt.off, got, tt.want)
		}
	}
}

func TestGraphemeBoundariesMultiRuneCluster(t *testing.T) {
	// Woman-woman-girl family: a five-rune ZWJ sequence forming one cluster
	// at rune offsets 1 through 5.
	text := "x\U0001F469\u200d\U0001F469\u200d\U0001F467y"
	if got := NextGraphemeBoundary(text, 1); got != 6 {
		t.Errorf("NextGraphemeBoundary at cluster start = %d, want 6", got)
	}
	if got := NextGraphemeBoundary(text, 3); got != 6 {
		t.Errorf("NextGraphemeBoundary inside cluster = %d, want 6", got)
	}
	if got := PrevGraphemeBoundary(text, 6); got != 1 {
		t.Errorf("PrevGraphemeBoundary at cluster end = %d, want 1", got)
	}
	if got := PrevGraphemeBoundary(text, 4); got != 1 {
		t.Errorf("PrevGraphemeBoundary inside cluster = %d, want 1", got)
	}
}
