package domain

import "math"

// Vec2 是网格坐标（可为小数，单位：格）。
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Camera struct {
	X         float64
	Y         float64
	Zoom      float64
	ViewportW float64
	ViewportH float64
}

// GridToScreen 等距投影：
// screenX = (gx-gy)*halfTileW*zoom + viewportCenterX - camX
// screenY = (gx+gy)*halfTileH*zoom + viewportCenterY - camY
// 必须与 ScreenToGrid 严格互逆，点击命中检测依赖这一点。
func GridToScreen(gx, gy float64, tileSize int, cam Camera) (float64, float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := float64(tileSize)
	halfH := float64(tileSize) / 2

	sx := (gx-gy)*halfW*zoom + cam.ViewportW/2 - cam.X
	sy := (gx+gy)*halfH*zoom + cam.ViewportH/2 - cam.Y
	return sx, sy
}

// ScreenToGrid 是 GridToScreen 的逆变换，四舍五入到最近的整格。
func ScreenToGrid(sx, sy float64, tileSize int, cam Camera) (int, int) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := float64(tileSize)
	halfH := float64(tileSize) / 2

	a := (sx - cam.ViewportW/2 + cam.X) / (halfW * zoom) // gx-gy
	b := (sy - cam.ViewportH/2 + cam.Y) / (halfH * zoom) // gx+gy

	gx := (a + b) / 2
	gy := (b - a) / 2
	return int(math.Round(gx)), int(math.Round(gy))
}

// GridDistance 欧氏距离（格）。
func GridDistance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
