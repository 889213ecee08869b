package sim

import (
	"math/rand"
	"time"

	"TreeKingdom/internal/kingdom/domain"
	"TreeKingdom/internal/shared/utils"
	"TreeKingdom/modules/kit/logx"
)

// tick 推进的单步时长上限。后台 actor 不会长时间停摆，
// 但恢复/调度抖动时不允许一口气追帧。
const maxStepSeconds = 0.5

// Engine 是单个玩家王国的模拟引擎。
// 非并发安全：所有调用必须在同一 goroutine（玩家 actor）内发生。
type Engine struct {
	log logx.Logger
	tun Tuning
	rng *rand.Rand
	now func() time.Time

	playerID int64
	owner    string

	terrain *domain.Terrain
	store   *domain.Store
	profile *domain.Profile
	fog     *domain.FogGrid

	strongholdID string

	lastTick    time.Time
	lastIncome  time.Time
	lastRaid    time.Time
	nextSpawnAt time.Time

	hasteUntil  time.Time
	shieldUntil time.Time
	cooldowns   map[string]time.Time

	notices []string
	dirty   bool
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithLogger(log logx.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func New(playerID int64, displayName string, tun Tuning, opts ...Option) *Engine {
	e := &Engine{
		tun:       tun,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       logx.Nop(),
		playerID:  playerID,
		owner:     utils.OwnerID(playerID),
		terrain:   domain.NewTerrain(tun.MapSize),
		store:     domain.NewStore(),
		fog:       domain.NewFogGrid(tun.MapSize),
		cooldowns: make(map[string]time.Time),
	}
	e.profile = domain.NewProfile(displayName, tun.CapacityBase, tun.PopBase, tun.ManaMax)
	for _, o := range opts {
		o(e)
	}
	return e
}

// InitFresh 生成新王国：主堡落在岛中心，周围撒一批初始资源点，
// 初始库存入账，主堡周边开雾。
func (e *Engine) InitFresh() {
	center := e.terrain.Center()
	sh := domain.NewEntity(utils.NewEntityID("b"), domain.KindStronghold, e.owner, center, e.tun.BuildingHP[domain.KindStronghold])
	e.store.Insert(sh)
	e.strongholdID = sh.ID

	for i := 0; i < 80; i++ {
		e.trySpawnNode()
	}

	for kind, n := range e.tun.StartStocks {
		e.profile.Ledger.Credit(kind, n)
	}
	e.profile.Quest = domain.NewQuest(e.rng)

	e.fog.RevealAround(center, e.tun.FogRadius+2)
	e.recomputeDerived()
	e.dirty = true
}

// Advance 推进一个 tick。步长来自注入时钟，超过上限截断。
func (e *Engine) Advance() {
	now := e.now()
	if e.lastTick.IsZero() {
		e.lastTick = now
		e.lastIncome = now
		e.lastRaid = now
		return
	}
	dt := now.Sub(e.lastTick).Seconds()
	e.lastTick = now
	if dt <= 0 {
		return
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}

	e.advanceCycle(now)
	e.collectIncome(now)
	e.advanceSpawner(now)
	e.advanceUnits(now, dt)
	e.resolveCombat(now, dt)
	e.updateFog()
	e.easeScreenPositions(dt)

	removed := e.store.Compact()
	if len(removed) > 0 {
		e.onRemoved(removed)
	}

	e.profile.Mana += e.tun.ManaRegenPS * dt
	if e.profile.Mana > e.profile.ManaMax {
		e.profile.Mana = e.profile.ManaMax
	}

	e.dirty = true
}

// onRemoved 清理指向已移除实体的引用。行为机自己也能在下个
// tick 发现目标消失，这里只是让状态立即一致。
func (e *Engine) onRemoved(removed []*domain.Entity) {
	gone := make(map[string]bool, len(removed))
	for _, r := range removed {
		gone[r.ID] = true
		if r.ID == e.strongholdID {
			e.strongholdID = ""
			e.pushNotice("stronghold_destroyed")
		}
	}
	for _, ent := range e.store.Snapshot() {
		if ent.Behavior != nil && ent.Behavior.TargetID != "" && gone[ent.Behavior.TargetID] {
			ent.Behavior.State = domain.StateIdle
			ent.Behavior.TargetID = ""
			ent.Behavior.WorkedMS = 0
		}
	}
}

// recomputeDerived 重算容量与人口上限（建筑数 + 升级等级推导）。
func (e *Engine) recomputeDerived() {
	storages := e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind == domain.KindStorage && ent.Alive()
	})
	houses := e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind == domain.KindHouse && ent.Alive()
	})
	cap := e.tun.CapacityBase +
		storages*e.tun.StorageBuildingCap +
		e.profile.UpgradeLevel(domain.UpgradeStorage)*e.tun.StorageUpgradeCap
	e.profile.Ledger.SetCapacity(cap)
	e.profile.MaxPop = e.tun.PopBase +
		houses*e.tun.HousePopBonus +
		e.profile.UpgradeLevel(domain.UpgradePopulation)*e.tun.PopUpgradeBonus
}

func (e *Engine) ownedUnitCount() int {
	return e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind.IsOwnedUnit() && ent.Owner == e.owner && ent.Alive()
	})
}

func (e *Engine) findHero() *domain.Entity {
	for _, ent := range e.store.Snapshot() {
		if ent.Kind == domain.KindHero && ent.Owner == e.owner && ent.Alive() {
			return ent
		}
	}
	return nil
}

// hasteActive：全局加速法术生效中，或英雄光环覆盖该单位。
func (e *Engine) hasteActive(u *domain.Entity, now time.Time) bool {
	if e.hasteUntil.After(now) {
		return true
	}
	if u.Kind == domain.KindHero {
		return false
	}
	hero := e.findHero()
	return hero != nil && domain.GridDistance(hero.Pos, u.Pos) <= e.tun.HeroBuffRadius
}

func (e *Engine) shieldActive(now time.Time) bool {
	return e.shieldUntil.After(now)
}

// unitSpeed 单位移速（格/秒）：基础 + 等级加成 + 移速升级，加速再乘系数。
func (e *Engine) unitSpeed(u *domain.Entity, now time.Time) float64 {
	s := e.tun.BaseSpeed +
		float64(u.Level-1)*e.tun.SpeedPerLevel +
		float64(e.profile.UpgradeLevel(domain.UpgradeSpeed))*e.tun.SpeedPerUpgrade
	if u.Kind == domain.KindSoldier {
		s = e.tun.SoldierSpeed
	}
	if e.hasteActive(u, now) {
		s *= e.tun.BuffFactor
	}
	return s
}

// requiredWorkMS 一次采集脉冲需要的工作毫秒数。
func (e *Engine) requiredWorkMS(u *domain.Entity, now time.Time) float64 {
	ms := e.tun.BaseWorkMS - float64(e.profile.UpgradeLevel(domain.UpgradeTool))*e.tun.ToolWorkMSCut
	if ms < e.tun.MinWorkMS {
		ms = e.tun.MinWorkMS
	}
	if e.hasteActive(u, now) {
		ms /= e.tun.BuffFactor
	}
	return ms
}

func (e *Engine) pushNotice(id string) {
	if len(e.notices) >= 20 {
		return
	}
	e.notices = append(e.notices, id)
}

// DrainNotices 取走并清空待播报事件（成就、袭击警报等）。
func (e *Engine) DrainNotices() []string {
	out := e.notices
	e.notices = nil
	return out
}

func (e *Engine) Dirty() bool {
	return e.dirty
}

func (e *Engine) ClearDirty() {
	e.dirty = false
}

func (e *Engine) PlayerID() int64 {
	return e.playerID
}

func (e *Engine) Profile() *domain.Profile {
	return e.profile
}

func (e *Engine) Store() *domain.Store {
	return e.store
}

func (e *Engine) Terrain() *domain.Terrain {
	return e.terrain
}

func (e *Engine) Fog() *domain.FogGrid {
	return e.fog
}

// ComputeScore 排行榜积分：库存 + 单位 + 建筑 + 升级 + 成就加权和。
func (e *Engine) ComputeScore() int64 {
	w := e.tun.ScoreWeights
	var score int64
	for kind, mult := range w.Stock {
		score += int64(e.profile.Ledger.Stock(kind)) * mult
	}
	for _, ent := range e.store.Snapshot() {
		if !ent.Alive() || ent.Owner != e.owner {
			continue
		}
		if base, ok := w.UnitBase[ent.Kind]; ok {
			score += base + int64(ent.Level-1)*w.UnitPerLvl
		}
		if v, ok := w.Building[ent.Kind]; ok {
			score += v
		}
	}
	for _, lvl := range e.profile.Upgrades {
		score += int64(lvl) * w.UpgradeLvl
	}
	for _, unlocked := range e.profile.Achievements {
		if unlocked {
			score += w.Achievement
		}
	}
	return score
}
