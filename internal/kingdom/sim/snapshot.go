package sim

import (
	"TreeKingdom/internal/kingdom/domain"
)

// EntityView 是推给客户端的单个实体渲染数据。
type EntityView struct {
	ID       string               `json:"id"`
	Kind     domain.Kind          `json:"kind"`
	Pos      domain.Vec2          `json:"pos"`
	Screen   domain.Vec2          `json:"screen"`
	HP       int                  `json:"hp"`
	MaxHP    int                  `json:"maxHp"`
	Owner    string               `json:"owner"`
	Level    int                  `json:"level,omitempty"`
	State    domain.BehaviorState `json:"state,omitempty"`
	TargetID string               `json:"targetId,omitempty"`
	Buff     bool                 `json:"buff,omitempty"` // 加速法术或英雄光环生效中
}

// QuestView 当前任务进度。
type QuestView struct {
	Kind     domain.ResourceKind `json:"kind"`
	Target   int                 `json:"target"`
	Progress int                 `json:"progress"`
	Reward   int                 `json:"reward"`
}

// UISnapshot 是一帧完整的客户端状态。
type UISnapshot struct {
	Stocks        map[domain.ResourceKind]int `json:"stocks"`
	Capacity      int                         `json:"capacity"`
	Population    int                         `json:"population"`
	MaxPop        int                         `json:"maxPop"`
	Mana          float64                     `json:"mana"`
	ManaMax       float64                     `json:"manaMax"`
	Cooldowns     map[string]int64            `json:"cooldowns"` // 法术 id -> 剩余冷却毫秒
	Upgrades      map[domain.UpgradeKind]int  `json:"upgrades"`
	Achievements  []string                    `json:"achievements"`
	Quest         QuestView                   `json:"quest"`
	Night         bool                        `json:"night"`
	CycleProgress float64                     `json:"cycleProgress"`
	Score         int64                       `json:"score"`
	Entities      []EntityView                `json:"entities"`
	Fog           []bool                      `json:"fog"`
	MapSize       int                         `json:"mapSize"`
	TileSize      int                         `json:"tileSize"`
	Notices       []string                    `json:"notices,omitempty"`
}

// BuildSnapshot 组装一帧。实体按深度（x+y 升序）排好序，
// 客户端按序绘制即得正确遮挡。迷雾未探索格上的实体不下发，
// 己方实体永远可见。
func (e *Engine) BuildSnapshot() *UISnapshot {
	now := e.now()

	var views []EntityView
	for _, ent := range e.store.All() {
		if !ent.Alive() {
			continue
		}
		if ent.Owner != e.owner && !e.fog.Discovered(int(ent.Pos.X), int(ent.Pos.Y)) {
			continue
		}
		v := EntityView{
			ID:     ent.ID,
			Kind:   ent.Kind,
			Pos:    ent.Pos,
			Screen: ent.ScreenPos,
			HP:     ent.HP,
			MaxHP:  ent.MaxHP,
			Owner:  ent.Owner,
			Level:  ent.Level,
		}
		if ent.Behavior != nil {
			v.State = ent.Behavior.State
			v.TargetID = ent.Behavior.TargetID
		}
		if ent.Kind.IsOwnedUnit() && e.hasteActive(ent, now) {
			v.Buff = true
		}
		views = append(views, v)
	}

	achievements := make([]string, 0, len(e.profile.Achievements))
	for id, ok := range e.profile.Achievements {
		if ok {
			achievements = append(achievements, id)
		}
	}

	cooldowns := make(map[string]int64, len(e.cooldowns))
	for id, until := range e.cooldowns {
		if rem := until.Sub(now).Milliseconds(); rem > 0 {
			cooldowns[id] = rem
		}
	}

	return &UISnapshot{
		Stocks:       e.profile.Ledger.Stocks(),
		Capacity:     e.profile.Ledger.Capacity(),
		Population:   e.ownedUnitCount(),
		MaxPop:       e.profile.MaxPop,
		Mana:         e.profile.Mana,
		ManaMax:      e.profile.ManaMax,
		Cooldowns:    cooldowns,
		Upgrades:     copyUpgrades(e.profile.Upgrades),
		Achievements: achievements,
		Quest: QuestView{
			Kind:     e.profile.Quest.Kind,
			Target:   e.profile.Quest.Target,
			Progress: e.profile.Quest.Progress,
			Reward:   e.profile.Quest.Reward,
		},
		Night:         e.IsNight(now),
		CycleProgress: e.CycleProgress(now),
		Score:         e.ComputeScore(),
		Entities:      views,
		Fog:           e.fog.Cells(),
		MapSize:       e.tun.MapSize,
		TileSize:      e.tun.TileSize,
		Notices:       e.DrainNotices(),
	}
}
