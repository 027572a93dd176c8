package scroll

import "testing"

func TestHeightTreePrefixSums(t *testing.T) {
	tree := NewHeightTree(5)
	for i := 0; i < 5; i++ {
		tree.Set(i, float64(10*(i+1)))
	}

	if got := tree.Total(); got != 150 {
		t.Errorf("total %v, want 150", got)
	}
	if got := tree.PrefixSum(2); got != 60 {
		t.Errorf("prefix(2) %v, want 60", got)
	}
	if got := tree.YPosition(3); got != 60 {
		t.Errorf("y(3) %v, want 60", got)
	}
	if got := tree.YPosition(0); got != 0 {
		t.Errorf("y(0) %v, want 0", got)
	}
}

func TestHeightTreeIndexAtY(t *testing.T) {
	tree := NewHeightTree(4)
	for i := 0; i < 4; i++ {
		tree.Set(i, 25)
	}
	tests := []struct {
		y    float64
		want int
	}{
		{-10, 0},
		{0, 0},
		{24.9, 0},
		{25, 1},
		{60, 2},
		{99, 3},
		{100, 3},
		{5000, 3},
	}
	for _, tt := range tests {
		if got := tree.IndexAtY(tt.y); got != tt.want {
			t.Errorf("IndexAtY(%v) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestHeightTreeInsertRemove(t *testing.T) {
	tree := NewHeightTree(3)
	tree.Set(0, 10)
	tree.Set(1, 20)
	tree.Set(2, 30)

	tree.Insert(1, 5)
	if tree.Len() != 4 {
		t.Fatalf("len %d, want 4", tree.Len())
	}
	if got := tree.Get(1); got != 5 {
		t.Errorf("inserted height %v, want 5", got)
	}
	if got := tree.YPosition(2); got != 15 {
		t.Errorf("y(2) %v, want 15", got)
	}
	if got := tree.Total(); got != 65 {
		t.Errorf("total %v, want 65", got)
	}

	tree.Remove(1)
	if got := tree.Total(); got != 60 {
		t.Errorf("total after remove %v, want 60", got)
	}
	if got := tree.Get(1); got != 20 {
		t.Errorf("height(1) after remove %v, want 20", got)
	}
}

func TestHeightTreeUpdateDeltas(t *testing.T) {
	tree := NewHeightTree(3)
	tree.Set(0, 10)
	tree.Set(1, 10)
	tree.Set(2, 10)

	tree.Set(1, 40)
	if got := tree.Total(); got != 60 {
		t.Errorf("total %v, want 60", got)
	}
	if got := tree.YPosition(2); got != 50 {
		t.Errorf("y(2) %v, want 50", got)
	}
	if got := tree.IndexAtY(45); got != 1 {
		t.Errorf("IndexAtY(45) = %d, want 1", got)
	}
}
