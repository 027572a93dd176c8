package fontmetrics

import "testing"

func TestMonoMeasure(t *testing.T) {
	m := NewMono()
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"日本", 4}, // wide runes take two cells
	}
	for _, tt := range tests {
		if got := m.Measure(tt.text, 0); got != tt.want {
			t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
	if got := m.LineHeight(0); got != 1 {
		t.Errorf("LineHeight = %v, want 1", got)
	}
}

func TestMonoSized(t *testing.T) {
	m := NewMonoSized(8, 16)
	if got := m.Measure("abcd", 0); got != 32 {
		t.Errorf("Measure = %v, want 32", got)
	}
	if got := m.LineHeight(3); got != 16 {
		t.Errorf("LineHeight = %v, want 16", got)
	}
	if got := m.CellWidth(); got != 8 {
		t.Errorf("CellWidth = %v, want 8", got)
	}
}

func TestMonoSizedRejectsNonPositive(t *testing.T) {
	m := NewMonoSized(0, -3)
	if got := m.Measure("ab", 0); got != 2 {
		t.Errorf("Measure = %v, want fallback 2", got)
	}
	if got := m.LineHeight(0); got != 1 {
		t.Errorf("LineHeight = %v, want fallback 1", got)
	}
}
