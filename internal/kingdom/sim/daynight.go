package sim

import (
	"math"
	"time"

	"TreeKingdom/internal/kingdom/domain"
	"TreeKingdom/internal/shared/utils"
)

// CycleProgress 昼夜周期进度 [0,1)。周期锚定在挂钟时间上，
// 离线期间昼夜照常流逝，重新上线不会错相位。
func (e *Engine) CycleProgress(now time.Time) float64 {
	cycle := e.tun.CycleDuration.Milliseconds()
	if cycle <= 0 {
		return 0
	}
	return float64(now.UnixMilli()%cycle) / float64(cycle)
}

// IsNight 周期末尾的 NightFraction 段是黑夜。
func (e *Engine) IsNight(now time.Time) bool {
	return e.CycleProgress(now) >= 1-e.tun.NightFraction
}

// advanceCycle 黑夜期间按固定间隔发起袭击。
// 王国太小（单位数不够）不会被袭击，给新手留发育窗口。
func (e *Engine) advanceCycle(now time.Time) {
	if !e.IsNight(now) {
		return
	}
	if e.ownedUnitCount() < e.tun.RaidUnitMin {
		return
	}
	if now.Sub(e.lastRaid) < e.tun.RaidInterval {
		return
	}
	e.lastRaid = now
	e.spawnRaid()
}

// spawnRaid 袭击规模随玩家兵力增长：1 + 士兵数/2。
// 出生点在主堡外圈随机方位，落在岛内草地上。
func (e *Engine) spawnRaid() {
	anchor := e.terrain.Center()
	if sh := e.store.Find(e.strongholdID); sh.Alive() {
		anchor = sh.Pos
	}
	soldiers := e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind == domain.KindSoldier && ent.Owner == e.owner && ent.Alive()
	})
	n := 1 + soldiers/2

	for i := 0; i < n; i++ {
		pos, ok := e.raidSpawnPos(anchor)
		if !ok {
			continue
		}
		r := domain.NewEntity(utils.NewEntityID("raider"), domain.KindRaider, domain.OwnerEnemy, pos, e.tun.RaiderHP)
		r.ScreenPos = pos
		e.store.Insert(r)
	}
	e.pushNotice("raid_incoming")
}

func (e *Engine) raidSpawnPos(anchor domain.Vec2) (domain.Vec2, bool) {
	for attempt := 0; attempt < e.tun.SpawnAttempts; attempt++ {
		angle := e.rng.Float64() * 2 * math.Pi
		pos := domain.Vec2{
			X: anchor.X + math.Cos(angle)*e.tun.RaidSpawnRadius,
			Y: anchor.Y + math.Sin(angle)*e.tun.RaidSpawnRadius,
		}
		if e.terrain.Buildable(int(math.Round(pos.X)), int(math.Round(pos.Y))) {
			return pos, true
		}
	}
	return domain.Vec2{}, false
}
