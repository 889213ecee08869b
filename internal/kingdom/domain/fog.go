package domain

// FogGrid 是按格的探索状态。单调：一旦 true 永不回退。
type FogGrid struct {
	size  int
	cells []bool
}

func NewFogGrid(size int) *FogGrid {
	if size < 1 {
		size = 1
	}
	return &FogGrid{size: size, cells: make([]bool, size*size)}
}

func (f *FogGrid) Size() int {
	return f.size
}

func (f *FogGrid) Discovered(x, y int) bool {
	if x < 0 || y < 0 || x >= f.size || y >= f.size {
		return false
	}
	return f.cells[y*f.size+x]
}

func (f *FogGrid) reveal(x, y int) {
	if x < 0 || y < 0 || x >= f.size || y >= f.size {
		return
	}
	f.cells[y*f.size+x] = true
}

// RevealAround 以 pos 为圆心揭开 radius 内的格子。
func (f *FogGrid) RevealAround(pos Vec2, radius float64) {
	if radius <= 0 {
		return
	}
	r := int(radius) + 1
	cx, cy := int(pos.X), int(pos.Y)
	for x := cx - r; x <= cx+r; x++ {
		for y := cy - r; y <= cy+r; y++ {
			dx := float64(x) - pos.X
			dy := float64(y) - pos.Y
			if dx*dx+dy*dy <= radius*radius {
				f.reveal(x, y)
			}
		}
	}
}

// Cells 返回底层数组拷贝（持久化用，行主序）。
func (f *FogGrid) Cells() []bool {
	out := make([]bool, len(f.cells))
	copy(out, f.cells)
	return out
}

// RestoreCells 从持久化状态恢复；长度不符时保持全未探索。
func (f *FogGrid) RestoreCells(cells []bool) {
	if len(cells) != len(f.cells) {
		return
	}
	copy(f.cells, cells)
}

func (f *FogGrid) DiscoveredCount() int {
	n := 0
	for _, c := range f.cells {
		if c {
			n++
		}
	}
	return n
}
