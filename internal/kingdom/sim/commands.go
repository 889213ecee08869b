package sim

import (
	"math"

	"TreeKingdom/internal/kingdom/domain"
	"TreeKingdom/internal/shared/utils"
)

// 玩家命令入口。全部守卫前置：校验不过整单拒绝，世界不变。
// 通过后的变更立刻生效并标脏。

// IssueBuildOrder 在指定格子放一座建筑。
func (e *Engine) IssueBuildOrder(kind domain.Kind, tile domain.Vec2) (*domain.Entity, error) {
	cost, ok := e.tun.BuildingCosts[kind]
	if !ok {
		return nil, ErrUnknownKind.WithData("kind", string(kind))
	}
	x, y := int(math.Round(tile.X)), int(math.Round(tile.Y))
	if !e.terrain.Buildable(x, y) || e.tileOccupied(x, y) {
		return nil, ErrInvalidPlacement.WithDataMap(map[string]any{"x": x, "y": y})
	}
	if lack, ok := e.profile.Ledger.TryDebit(cost); !ok {
		return nil, ErrInsufficientResources.WithData("kind", string(lack))
	}

	pos := domain.Vec2{X: float64(x), Y: float64(y)}
	b := domain.NewEntity(utils.NewEntityID("b"), kind, e.owner, pos, e.tun.BuildingHP[kind])
	b.ScreenPos = pos
	e.store.Insert(b)
	e.recomputeDerived()
	e.fog.RevealAround(pos, e.tun.FogRadius)
	e.dirty = true
	return b, nil
}

// IssueSpawnUnit 在主堡旁招募一个单位。英雄全局唯一。
func (e *Engine) IssueSpawnUnit(kind domain.Kind) (*domain.Entity, error) {
	cost, ok := e.tun.UnitCosts[kind]
	if !ok {
		return nil, ErrUnknownKind.WithData("kind", string(kind))
	}
	if kind == domain.KindHero && e.findHero() != nil {
		return nil, ErrHeroExists
	}
	if e.ownedUnitCount() >= e.profile.MaxPop {
		return nil, ErrPopulationFull.WithData("maxPop", e.profile.MaxPop)
	}
	if lack, ok := e.profile.Ledger.TryDebit(cost); !ok {
		return nil, ErrInsufficientResources.WithData("kind", string(lack))
	}

	anchor := e.terrain.Center()
	if sh := e.store.Find(e.strongholdID); sh.Alive() {
		anchor = sh.Pos
	}
	pos := domain.Vec2{
		X: anchor.X + e.rng.Float64()*2 - 1,
		Y: anchor.Y + 1 + e.rng.Float64(),
	}
	u := domain.NewEntity(utils.NewEntityID(string(kind)), kind, e.owner, pos, e.tun.UnitHP[kind])
	u.ScreenPos = pos
	e.store.Insert(u)
	e.dirty = true
	return u, nil
}

// IssueMoveOrder 给英雄下移动指令。只有英雄接受手动指挥。
func (e *Engine) IssueMoveOrder(target domain.Vec2) error {
	hero := e.findHero()
	if hero == nil {
		return ErrHeroMissing
	}
	tp := target
	hero.Behavior.State = domain.StateMoving
	hero.Behavior.TargetID = ""
	hero.Behavior.TargetPos = &tp
	e.dirty = true
	return nil
}

// IssueCastSpell 施放法术：扣法力、记冷却、挂到期时间。
func (e *Engine) IssueCastSpell(id string) error {
	spell, ok := e.tun.Spells[id]
	if !ok {
		return ErrUnknownKind.WithData("spell", id)
	}
	now := e.now()
	if until, ok := e.cooldowns[id]; ok && until.After(now) {
		return ErrSpellCooldown.WithData("readyInMs", until.Sub(now).Milliseconds())
	}
	if e.profile.Mana < spell.ManaCost {
		return ErrInsufficientMana
	}
	e.profile.Mana -= spell.ManaCost
	e.cooldowns[id] = now.Add(spell.Cooldown)
	switch id {
	case SpellHaste:
		e.hasteUntil = now.Add(spell.Duration)
	case SpellShield:
		e.shieldUntil = now.Add(spell.Duration)
	}
	e.dirty = true
	return nil
}

// IssueTrade 执行一笔固定汇率兑换。入账超容照常截断。
func (e *Engine) IssueTrade(id string) error {
	trade, ok := e.tun.Trades[id]
	if !ok {
		return ErrUnknownKind.WithData("trade", id)
	}
	if lack, ok := e.profile.Ledger.TryDebit(trade.In); !ok {
		return ErrInsufficientResources.WithData("kind", string(lack))
	}
	for kind, n := range trade.Out {
		e.profile.Ledger.Credit(kind, n)
	}
	e.dirty = true
	return nil
}

// IssueBuyUpgrade 购买一级升级，木材支付，费用几何增长。
func (e *Engine) IssueBuyUpgrade(kind domain.UpgradeKind) error {
	valid := false
	for _, k := range domain.UpgradeKinds {
		if k == kind {
			valid = true
			break
		}
	}
	if !valid {
		return ErrUnknownKind.WithData("upgrade", string(kind))
	}
	level := e.profile.UpgradeLevel(kind)
	if level >= domain.UpgradeMaxLevel {
		return ErrUpgradeMaxed
	}
	cost := map[domain.ResourceKind]int{domain.ResWood: domain.UpgradeCost(level)}
	if lack, ok := e.profile.Ledger.TryDebit(cost); !ok {
		return ErrInsufficientResources.WithData("kind", string(lack))
	}
	e.profile.Upgrades[kind] = level + 1
	e.recomputeDerived()
	e.dirty = true
	return nil
}
