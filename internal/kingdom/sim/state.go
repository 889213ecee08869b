package sim

import (
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

// State 是引擎的完整可持久化状态。导出是深拷贝，
// 恢复是整体替换（不做增量合并）。
type State struct {
	PlayerID     int64                       `json:"playerId"`
	DisplayName  string                      `json:"displayName"`
	Stocks       map[domain.ResourceKind]int `json:"stocks"`
	Upgrades     map[domain.UpgradeKind]int  `json:"upgrades"`
	Achievements []string                    `json:"achievements"`
	Quest        domain.Quest                `json:"quest"`
	Lifetime     domain.LifetimeStats        `json:"lifetime"`
	Mana         float64                     `json:"mana"`
	Entities     []*domain.Entity            `json:"entities"`
	Fog          []bool                      `json:"fog"`
	Score        int64                       `json:"score"`
	SavedAt      time.Time                   `json:"savedAt"`
}

// ExportState 深拷贝当前世界。调用方可在任意 goroutine 持有返回值。
func (e *Engine) ExportState() *State {
	ents := e.store.Snapshot()
	out := make([]*domain.Entity, len(ents))
	for i, ent := range ents {
		c := *ent
		if ent.Behavior != nil {
			b := *ent.Behavior
			if ent.Behavior.TargetPos != nil {
				tp := *ent.Behavior.TargetPos
				b.TargetPos = &tp
			}
			c.Behavior = &b
		}
		out[i] = &c
	}
	achievements := make([]string, 0, len(e.profile.Achievements))
	for id, ok := range e.profile.Achievements {
		if ok {
			achievements = append(achievements, id)
		}
	}
	return &State{
		PlayerID:     e.playerID,
		DisplayName:  e.profile.DisplayName,
		Stocks:       e.profile.Ledger.Stocks(),
		Upgrades:     copyUpgrades(e.profile.Upgrades),
		Achievements: achievements,
		Quest:        e.profile.Quest,
		Lifetime:     e.profile.Lifetime,
		Mana:         e.profile.Mana,
		Entities:     out,
		Fog:          e.fog.Cells(),
		Score:        e.ComputeScore(),
		SavedAt:      e.now(),
	}
}

// RestoreState 用持久化状态整体重建世界。
func (e *Engine) RestoreState(s *State) {
	e.profile = domain.NewProfile(s.DisplayName, e.tun.CapacityBase, e.tun.PopBase, e.tun.ManaMax)
	for k, v := range s.Stocks {
		e.profile.Ledger.ForceSet(k, v)
	}
	e.profile.Upgrades = copyUpgrades(s.Upgrades)
	for _, id := range s.Achievements {
		e.profile.Achievements[id] = true
	}
	e.profile.Quest = s.Quest
	if !e.profile.Quest.Active && e.profile.Quest.Target == 0 {
		e.profile.Quest = domain.NewQuest(e.rng)
	}
	e.profile.Lifetime = s.Lifetime
	e.profile.Mana = s.Mana

	e.store = domain.NewStore()
	e.strongholdID = ""
	for _, ent := range s.Entities {
		c := *ent
		if ent.Behavior != nil {
			b := *ent.Behavior
			if ent.Behavior.TargetPos != nil {
				tp := *ent.Behavior.TargetPos
				b.TargetPos = &tp
			}
			c.Behavior = &b
		}
		if c.Kind == domain.KindStronghold {
			e.strongholdID = c.ID
		}
		e.store.Insert(&c)
	}

	e.fog = domain.NewFogGrid(e.tun.MapSize)
	e.fog.RestoreCells(s.Fog)

	e.recomputeDerived()
	e.lastTick = time.Time{}
	e.dirty = false
}

func copyUpgrades(in map[domain.UpgradeKind]int) map[domain.UpgradeKind]int {
	out := make(map[domain.UpgradeKind]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
