package scroll

// HeightTree tracks per-paragraph heights with O(log n) prefix sums using a
// Fenwick (binary indexed) tree. It answers "where does paragraph i start",
// "how tall is everything", and "which paragraph covers vertical offset y"
// without summing the whole document.
type HeightTree struct {
	heights []float64
	tree    []float64 // 1-based Fenwick array
}

// NewHeightTree creates a tree for n paragraphs, all with zero height.
func NewHeightTree(n int) *HeightTree {
	if n < 0 {
		n = 0
	}
	t := &HeightTree{}
	t.Resize(n)
	return t
}

// Len returns the number of tracked paragraphs.
func (t *HeightTree) Len() int {
	return len(t.heights)
}

// Resize grows or shrinks the tree to n entries, keeping existing heights
// where indices survive.
func (t *HeightTree) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(t.heights) {
		t.heights = t.heights[:n]
	} else {
		grown := make([]float64, n)
		copy(grown, t.heights)
		t.heights = grown
	}
	t.rebuild()
}

// Get returns the height of paragraph index, or 0 if out of range.
func (t *HeightTree) Get(index int) float64 {
	if index < 0 || index >= len(t.heights) {
		return 0
	}
	return t.heights[index]
}

// Set records the height of paragraph index.
func (t *HeightTree) Set(index int, height float64) {
	if index < 0 || index >= len(t.heights) {
		return
	}
	delta := height - t.heights[index]
	if delta == 0 {
		return
	}
	t.heights[index] = height
	for i := index + 1; i < len(t.tree); i += i & (-i) {
		t.tree[i] += delta
	}
}

// PrefixSum returns the summed height of paragraphs [0, index].
func (t *HeightTree) PrefixSum(index int) float64 {
	if len(t.heights) == 0 {
		return 0
	}
	if index >= len(t.heights) {
		index = len(t.heights) - 1
	}
	sum := 0.0
	for i := index + 1; i > 0; i -= i & (-i) {
		sum += t.tree[i]
	}
	return sum
}

// Total returns the summed height of all paragraphs.
func (t *HeightTree) Total() float64 {
	if len(t.heights) == 0 {
		return 0
	}
	return t.PrefixSum(len(t.heights) - 1)
}

// YPosition returns the vertical offset of the top of paragraph index.
func (t *HeightTree) YPosition(index int) float64 {
	if index <= 0 {
		return 0
	}
	if index > len(t.heights) {
		index = len(t.heights)
	}
	return t.PrefixSum(index - 1)
}

// IndexAtY returns the paragraph whose vertical span covers y, descending
// the tree in O(log n). y <= 0 maps to the first paragraph; y at or past
// the total maps to the last.
func (t *HeightTree) IndexAtY(y float64) int {
	n := len(t.heights)
	if n == 0 || y <= 0 {
		return 0
	}
	pos := 0
	sum := 0.0
	for bit := highestBit(n); bit > 0; bit >>= 1 {
		next := pos + bit
		if next < len(t.tree) && sum+t.tree[next] <= y {
			pos = next
			sum += t.tree[next]
		}
	}
	// pos is 1-based here; the 0-based answer is pos itself.
	if pos >= n {
		return n - 1
	}
	return pos
}

// Insert makes room for a new paragraph at index with the given height.
// The Fenwick array is rebuilt; insertion is O(n) but amortized against
// the cost of the edit that caused it.
func (t *HeightTree) Insert(index int, height float64) {
	if index < 0 {
		index = 0
	}
	if index > len(t.heights) {
		index = len(t.heights)
	}
	t.heights = append(t.heights, 0)
	copy(t.heights[index+1:], t.heights[index:])
	t.heights[index] = height
	t.rebuild()
}

// Remove drops the paragraph at index.
func (t *HeightTree) Remove(index int) {
	if index < 0 || index >= len(t.heights) {
		return
	}
	t.heights = append(t.heights[:index], t.heights[index+1:]...)
	t.rebuild()
}

func (t *HeightTree) rebuild() {
	t.tree = make([]float64, len(t.heights)+1)
	for i, h := range t.heights {
		for j := i + 1; j < len(t.tree); j += j & (-j) {
			t.tree[j] += h
		}
	}
}

func highestBit(n int) int {
	bit := 1
	for bit <= n {
		bit <<= 1
	}
	return bit >> 1
}
