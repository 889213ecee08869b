package sim

import (
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

// resolveCombat 结算一个 tick 的战斗。
//
// 同时结算：双方都先选靶再出手，互殴时可以同归于尽。
// 死亡移除延迟到 tick 末尾的 Compact，本 tick 内 HP<=0 的
// 实体不再作为目标（Alive 过滤），但它已经打出的伤害有效。
func (e *Engine) resolveCombat(now time.Time, dt float64) {
	snapshot := e.store.Snapshot()

	var raiders, soldiers []*domain.Entity
	for _, ent := range snapshot {
		switch {
		case ent.Kind == domain.KindRaider && ent.Alive():
			raiders = append(raiders, ent)
		case ent.Kind == domain.KindSoldier && ent.Owner == e.owner && ent.Alive():
			soldiers = append(soldiers, ent)
		}
	}

	type strike struct {
		target *domain.Entity
		dmg    int
	}
	var strikes []strike

	shield := e.shieldActive(now)
	for _, r := range raiders {
		target, dist := e.store.Nearest(r.Pos, func(ent *domain.Entity) bool {
			return ent.Owner == e.owner && ent.Alive()
		})
		if target == nil {
			continue
		}
		if dist > e.tun.MeleeRange {
			e.stepToward(r, target.Pos, e.tun.RaiderSpeed*dt)
			continue
		}
		if shield {
			continue
		}
		if e.rng.Float64() < e.tun.RaiderHitPerSec*dt {
			strikes = append(strikes, strike{target: target, dmg: e.tun.RaiderDamage})
		}
	}

	soldierDmg := e.tun.SoldierDamage + e.profile.UpgradeLevel(domain.UpgradeWar)*e.tun.WarDamageBonus
	for _, s := range soldiers {
		target, dist := e.store.Nearest(s.Pos, func(ent *domain.Entity) bool {
			return ent.Kind == domain.KindRaider && ent.Alive()
		})
		if target == nil {
			if s.Behavior != nil && s.Behavior.State == domain.StateMoving {
				e.resetBehavior(s.Behavior)
			}
			continue
		}
		if dist > e.tun.MeleeRange {
			if s.Behavior != nil {
				s.Behavior.State = domain.StateMoving
				s.Behavior.TargetID = target.ID
			}
			e.stepToward(s, target.Pos, e.unitSpeed(s, now)*dt)
			continue
		}
		if e.rng.Float64() < e.tun.SoldierHitPerSec*dt {
			strikes = append(strikes, strike{target: target, dmg: soldierDmg})
		}
	}

	for _, st := range strikes {
		wasAlive := st.target.Alive()
		st.target.HP -= st.dmg
		if !wasAlive || st.target.HP > 0 {
			continue
		}
		if st.target.Kind == domain.KindRaider {
			e.profile.Lifetime.Kills++
			e.pushNotice("raider_down")
			for _, id := range e.profile.CheckAchievements() {
				e.pushNotice("achievement:" + id)
			}
		} else {
			e.pushNotice("unit_lost")
		}
	}
}
