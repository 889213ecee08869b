package domain

import "math"

type TileKind int8

const (
	TileGrass TileKind = iota
	TileWater
	TileDeepWater
)

const (
	waterMargin     = 5 // 距岛缘多少格开始是浅水
	deepWaterMargin = 2
)

// Terrain 是圆形海岛地图：中心草地，边缘两圈水。
type Terrain struct {
	size  int
	tiles []TileKind
}

func NewTerrain(size int) *Terrain {
	t := &Terrain{size: size, tiles: make([]TileKind, size*size)}
	half := float64(size) / 2
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			dist := math.Hypot(float64(x)-half, float64(y)-half)
			switch {
			case dist > half-deepWaterMargin:
				t.tiles[y*size+x] = TileDeepWater
			case dist > half-waterMargin:
				t.tiles[y*size+x] = TileWater
			default:
				t.tiles[y*size+x] = TileGrass
			}
		}
	}
	return t
}

func (t *Terrain) Size() int {
	return t.size
}

func (t *Terrain) At(x, y int) TileKind {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return TileDeepWater
	}
	return t.tiles[y*t.size+x]
}

// Buildable：只有岛内草地可建造/可刷资源。
func (t *Terrain) Buildable(x, y int) bool {
	return t.At(x, y) == TileGrass
}

// Center 返回岛中心格（主堡落点）。
func (t *Terrain) Center() Vec2 {
	c := float64(t.size / 2)
	return Vec2{X: c, Y: c}
}
