package sim

import (
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

// collectIncome 建筑被动产出：瞭望塔产金，农场产粮。
// 固定间隔整批结算，超容部分照常截断。
func (e *Engine) collectIncome(now time.Time) {
	if now.Sub(e.lastIncome) < e.tun.IncomeInterval {
		return
	}
	e.lastIncome = now

	towers := e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind == domain.KindWatchtower && ent.Owner == e.owner && ent.Alive()
	})
	farms := e.store.Count(func(ent *domain.Entity) bool {
		return ent.Kind == domain.KindFarm && ent.Owner == e.owner && ent.Alive()
	})

	if towers > 0 {
		added, _ := e.profile.Ledger.Credit(domain.ResGold, towers*e.tun.WatchtowerGold)
		e.profile.Lifetime.AddResource(domain.ResGold, added)
	}
	if farms > 0 {
		added, _ := e.profile.Ledger.Credit(domain.ResFood, farms*e.tun.FarmFood)
		e.profile.Lifetime.AddResource(domain.ResFood, added)
	}
	if towers > 0 || farms > 0 {
		for _, id := range e.profile.CheckAchievements() {
			e.pushNotice("achievement:" + id)
		}
	}
}
