package domain

import "testing"

func TestFogGrid_Reveal单调不回退(t *testing.T) {
	f := NewFogGrid(20)
	f.RevealAround(Vec2{X: 10, Y: 10}, 3)

	if !f.Discovered(10, 10) || !f.Discovered(12, 10) {
		t.Fatalf("半径内应已探索")
	}
	if f.Discovered(10, 14) {
		t.Fatalf("半径外不应探索")
	}

	before := f.DiscoveredCount()
	// 再揭一次别处，原来的格子不回退
	f.RevealAround(Vec2{X: 3, Y: 3}, 2)
	if !f.Discovered(10, 10) {
		t.Fatalf("已探索格子不应回退")
	}
	if f.DiscoveredCount() < before {
		t.Fatalf("探索数只增不减")
	}
}

func TestFogGrid_RestoreCells_长度不符保持全黑(t *testing.T) {
	f := NewFogGrid(4)
	f.RestoreCells([]bool{true, true})
	if f.DiscoveredCount() != 0 {
		t.Fatalf("长度不符应忽略恢复")
	}

	cells := make([]bool, 16)
	cells[5] = true
	f.RestoreCells(cells)
	if !f.Discovered(1, 1) {
		t.Fatalf("恢复后 (1,1) 应已探索")
	}
}

func TestFogGrid_越界查询返回未探索(t *testing.T) {
	f := NewFogGrid(4)
	if f.Discovered(-1, 0) || f.Discovered(0, 4) {
		t.Fatalf("越界应视为未探索")
	}
}
