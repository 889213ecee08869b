package sim

import (
	"math"
	"time"

	"TreeKingdom/internal/kingdom/domain"
	"TreeKingdom/internal/shared/utils"
)

// advanceSpawner 周期性往野外补资源点。节点稀缺时切换到
// 快速补充间隔，自然升级进一步缩短间隔。
func (e *Engine) advanceSpawner(now time.Time) {
	if e.nextSpawnAt.IsZero() {
		e.nextSpawnAt = now.Add(e.spawnInterval())
		return
	}
	if now.Before(e.nextSpawnAt) {
		return
	}
	e.trySpawnNode()
	e.nextSpawnAt = now.Add(e.spawnInterval())
}

func (e *Engine) spawnInterval() time.Duration {
	unclaimed := e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind.IsNode() && ent.Owner == domain.OwnerNature && ent.Alive()
	})
	base := e.tun.NodeSpawnBase
	if unclaimed < e.tun.NodeLowWater {
		base = e.tun.NodeSpawnFast
	}
	factor := math.Pow(0.9, float64(e.profile.UpgradeLevel(domain.UpgradeNature)))
	return time.Duration(float64(base) * factor)
}

// trySpawnNode 随机找一块空草地放一个加权随机的资源点。
// 主堡周围留出保护圈。找不到位置就放弃本次刷新。
func (e *Engine) trySpawnNode() {
	pos, ok := e.findSpawnTile()
	if !ok {
		return
	}
	kind := e.pickNodeKind()
	hp := e.tun.NodeHP
	node := domain.NewEntity(utils.NewEntityID(string(kind)), kind, domain.OwnerNature, pos, hp)
	node.ScreenPos = pos
	e.store.Insert(node)
}

func (e *Engine) findSpawnTile() (domain.Vec2, bool) {
	center := e.terrain.Center()
	for attempt := 0; attempt < e.tun.SpawnAttempts; attempt++ {
		x := e.rng.Intn(e.tun.MapSize)
		y := e.rng.Intn(e.tun.MapSize)
		if !e.terrain.Buildable(x, y) {
			continue
		}
		pos := domain.Vec2{X: float64(x), Y: float64(y)}
		if domain.GridDistance(pos, center) < e.tun.ProtectedRadius {
			continue
		}
		if e.tileOccupied(x, y) {
			continue
		}
		return pos, true
	}
	return domain.Vec2{}, false
}

// tileOccupied 该格上已有建筑或资源点。移动单位不占格。
func (e *Engine) tileOccupied(x, y int) bool {
	return e.store.Count(func(ent *domain.Entity) bool {
		if !ent.Alive() || ent.Kind.IsMobile() {
			return false
		}
		return int(math.Round(ent.Pos.X)) == x && int(math.Round(ent.Pos.Y)) == y
	}) > 0
}

func (e *Engine) pickNodeKind() domain.Kind {
	total := 0.0
	for _, w := range e.tun.NodeWeights {
		total += w.Weight
	}
	roll := e.rng.Float64() * total
	for _, w := range e.tun.NodeWeights {
		roll -= w.Weight
		if roll <= 0 {
			return w.Kind
		}
	}
	return e.tun.NodeWeights[len(e.tun.NodeWeights)-1].Kind
}
