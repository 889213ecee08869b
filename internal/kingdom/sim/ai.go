package sim

import (
	"math"
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

// advanceUnits 推进己方单位的行为机。
// 工人：IDLE 找最近野外节点 -> MOVING 走过去 -> WORKING 攒工时，
// 满一个脉冲结账后回 IDLE 重新找目标。
// 英雄：只响应玩家下达的移动指令，永不自动采集。
// 士兵的移动在战斗结算里处理。
func (e *Engine) advanceUnits(now time.Time, dt float64) {
	for _, u := range e.store.Snapshot() {
		if u.Owner != e.owner || u.Behavior == nil || !u.Alive() {
			continue
		}
		switch u.Kind {
		case domain.KindWorker:
			e.advanceWorker(u, now, dt)
		case domain.KindHero:
			e.advanceHero(u, now, dt)
		}
	}
}

func (e *Engine) advanceWorker(u *domain.Entity, now time.Time, dt float64) {
	b := u.Behavior
	switch b.State {
	case domain.StateIdle:
		target, dist := e.store.Nearest(u.Pos, func(ent *domain.Entity) bool {
			return ent.Kind.IsNode() && ent.Owner == domain.OwnerNature && ent.Alive()
		})
		if target == nil || dist > e.tun.AggroRadius {
			return
		}
		b.State = domain.StateMoving
		b.TargetID = target.ID
		b.WorkedMS = 0

	case domain.StateMoving:
		target := e.store.Find(b.TargetID)
		if !target.Alive() {
			e.resetBehavior(b)
			return
		}
		if domain.GridDistance(u.Pos, target.Pos) <= e.tun.ArrivalEps {
			b.State = domain.StateWorking
			b.WorkedMS = 0
			return
		}
		e.stepToward(u, target.Pos, e.unitSpeed(u, now)*dt)

	case domain.StateWorking:
		target := e.store.Find(b.TargetID)
		if !target.Alive() {
			e.resetBehavior(b)
			return
		}
		b.WorkedMS += dt * 1000
		if b.WorkedMS >= e.requiredWorkMS(u, now) {
			e.harvest(u, target)
			e.resetBehavior(b)
		}
	}
}

func (e *Engine) advanceHero(u *domain.Entity, now time.Time, dt float64) {
	b := u.Behavior
	if b.State != domain.StateMoving || b.TargetPos == nil {
		return
	}
	if domain.GridDistance(u.Pos, *b.TargetPos) <= e.tun.ArrivalEps {
		b.State = domain.StateIdle
		b.TargetPos = nil
		return
	}
	e.stepToward(u, *b.TargetPos, e.unitSpeed(u, now)*dt)
}

// harvest 结算一次采集脉冲：入账（超容截断）、任务、经验、
// 耗尽节点并记累计统计，最后补查成就。
func (e *Engine) harvest(u, node *domain.Entity) {
	payout, ok := e.tun.Payouts[node.Kind]
	if !ok {
		return
	}
	yield := payout.Base + u.Level*payout.PerLevel
	added, full := e.profile.Ledger.Credit(payout.Kind, yield)
	if full {
		e.pushNotice("storage_full")
	}
	if added > 0 {
		e.profile.Lifetime.AddResource(payout.Kind, added)
		if e.profile.Quest.Advance(payout.Kind, added) {
			e.profile.Ledger.Credit(domain.ResGold, e.profile.Quest.Reward)
			e.pushNotice("quest_done")
			e.profile.Quest = domain.NewQuest(e.rng)
		}
	}

	u.Exp += e.tun.HarvestExp
	if u.Exp >= u.Level*e.tun.LevelUpExp {
		u.Level++
		u.Exp = 0
		e.pushNotice("unit_levelup")
	}

	node.HP = 0
	e.profile.Lifetime.NodesDepleted++

	for _, id := range e.profile.CheckAchievements() {
		e.pushNotice("achievement:" + id)
	}
}

func (e *Engine) resetBehavior(b *domain.Behavior) {
	b.State = domain.StateIdle
	b.TargetID = ""
	b.TargetPos = nil
	b.WorkedMS = 0
}

// stepToward 朝目标走一步，不会越过目标点。
func (e *Engine) stepToward(u *domain.Entity, to domain.Vec2, step float64) {
	dx := to.X - u.Pos.X
	dy := to.Y - u.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist <= step || dist == 0 {
		u.Pos = to
		return
	}
	u.Pos.X += dx / dist * step
	u.Pos.Y += dy / dist * step
}

// updateFog 每个存活己方单位与主堡都揭雾。只揭不盖。
func (e *Engine) updateFog() {
	for _, ent := range e.store.Snapshot() {
		if ent.Owner != e.owner || !ent.Alive() {
			continue
		}
		if ent.Kind.IsOwnedUnit() || ent.Kind == domain.KindStronghold || ent.Kind == domain.KindWatchtower {
			e.fog.RevealAround(ent.Pos, e.tun.FogRadius)
		}
	}
}

// easeScreenPositions 渲染坐标指数趋近逻辑坐标，移动视觉上平滑。
// 这里只维护网格空间的平滑值，像素换算交给快照层。
func (e *Engine) easeScreenPositions(dt float64) {
	k := 1 - math.Exp(-e.tun.ScreenEasePerS*dt)
	for _, ent := range e.store.Snapshot() {
		if !ent.Kind.IsMobile() {
			ent.ScreenPos = ent.Pos
			continue
		}
		ent.ScreenPos.X += (ent.Pos.X - ent.ScreenPos.X) * k
		ent.ScreenPos.Y += (ent.Pos.Y - ent.ScreenPos.Y) * k
	}
}
