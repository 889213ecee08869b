package model

import (
	"time"

	"TreeKingdom/internal/kingdom/domain"
	"TreeKingdom/internal/kingdom/sim"
)

// KingdomDoc 是 mongo 里的王国文档（每玩家一条，_id = playerId）。
// 整文档覆盖写，字段随 sim.State 演进，mongo 侧无 schema 约束。
type KingdomDoc struct {
	PlayerID     int64          `bson:"_id"`
	DisplayName  string         `bson:"displayName"`
	Stocks       map[string]int `bson:"stocks"`
	Upgrades     map[string]int `bson:"upgrades"`
	Achievements []string       `bson:"achievements"`
	Quest        QuestDoc       `bson:"quest"`
	Lifetime     LifetimeDoc    `bson:"lifetime"`
	Mana         float64        `bson:"mana"`
	Entities     []EntityDoc    `bson:"entities"`
	Fog          []bool         `bson:"fog"`
	Score        int64          `bson:"score"`
	SavedAt      time.Time      `bson:"savedAt"`
}

type QuestDoc struct {
	Kind     string `bson:"kind"`
	Target   int    `bson:"target"`
	Progress int    `bson:"progress"`
	Reward   int    `bson:"reward"`
	Active   bool   `bson:"active"`
}

type LifetimeDoc struct {
	Wood          int `bson:"wood"`
	Stone         int `bson:"stone"`
	Gold          int `bson:"gold"`
	Food          int `bson:"food"`
	Kills         int `bson:"kills"`
	NodesDepleted int `bson:"nodesDepleted"`
}

type EntityDoc struct {
	ID       string       `bson:"id"`
	Kind     string       `bson:"kind"`
	X        float64      `bson:"x"`
	Y        float64      `bson:"y"`
	HP       int          `bson:"hp"`
	MaxHP    int          `bson:"maxHp"`
	Owner    string       `bson:"owner"`
	Level    int          `bson:"level,omitempty"`
	Exp      int          `bson:"exp,omitempty"`
	Behavior *BehaviorDoc `bson:"behavior,omitempty"`
}

type BehaviorDoc struct {
	State    string   `bson:"state"`
	TargetID string   `bson:"targetId,omitempty"`
	TargetX  *float64 `bson:"targetX,omitempty"`
	TargetY  *float64 `bson:"targetY,omitempty"`
	WorkedMS float64  `bson:"workedMs,omitempty"`
}

func KingdomStateToDoc(s *sim.State) KingdomDoc {
	doc := KingdomDoc{
		PlayerID:     s.PlayerID,
		DisplayName:  s.DisplayName,
		Stocks:       make(map[string]int, len(s.Stocks)),
		Upgrades:     make(map[string]int, len(s.Upgrades)),
		Achievements: append([]string(nil), s.Achievements...),
		Quest: QuestDoc{
			Kind:     string(s.Quest.Kind),
			Target:   s.Quest.Target,
			Progress: s.Quest.Progress,
			Reward:   s.Quest.Reward,
			Active:   s.Quest.Active,
		},
		Lifetime: LifetimeDoc{
			Wood:          s.Lifetime.Wood,
			Stone:         s.Lifetime.Stone,
			Gold:          s.Lifetime.Gold,
			Food:          s.Lifetime.Food,
			Kills:         s.Lifetime.Kills,
			NodesDepleted: s.Lifetime.NodesDepleted,
		},
		Mana:    s.Mana,
		Fog:     append([]bool(nil), s.Fog...),
		Score:   s.Score,
		SavedAt: s.SavedAt,
	}
	for k, v := range s.Stocks {
		doc.Stocks[string(k)] = v
	}
	for k, v := range s.Upgrades {
		doc.Upgrades[string(k)] = v
	}
	doc.Entities = make([]EntityDoc, 0, len(s.Entities))
	for _, ent := range s.Entities {
		ed := EntityDoc{
			ID:    ent.ID,
			Kind:  string(ent.Kind),
			X:     ent.Pos.X,
			Y:     ent.Pos.Y,
			HP:    ent.HP,
			MaxHP: ent.MaxHP,
			Owner: ent.Owner,
			Level: ent.Level,
			Exp:   ent.Exp,
		}
		if b := ent.Behavior; b != nil {
			bd := &BehaviorDoc{
				State:    string(b.State),
				TargetID: b.TargetID,
				WorkedMS: b.WorkedMS,
			}
			if b.TargetPos != nil {
				tx, ty := b.TargetPos.X, b.TargetPos.Y
				bd.TargetX, bd.TargetY = &tx, &ty
			}
			ed.Behavior = bd
		}
		doc.Entities = append(doc.Entities, ed)
	}
	return doc
}

func KingdomDocToState(doc KingdomDoc) *sim.State {
	s := &sim.State{
		PlayerID:     doc.PlayerID,
		DisplayName:  doc.DisplayName,
		Stocks:       make(map[domain.ResourceKind]int, len(doc.Stocks)),
		Upgrades:     make(map[domain.UpgradeKind]int, len(doc.Upgrades)),
		Achievements: append([]string(nil), doc.Achievements...),
		Quest: domain.Quest{
			Kind:     domain.ResourceKind(doc.Quest.Kind),
			Target:   doc.Quest.Target,
			Progress: doc.Quest.Progress,
			Reward:   doc.Quest.Reward,
			Active:   doc.Quest.Active,
		},
		Lifetime: domain.LifetimeStats{
			Wood:          doc.Lifetime.Wood,
			Stone:         doc.Lifetime.Stone,
			Gold:          doc.Lifetime.Gold,
			Food:          doc.Lifetime.Food,
			Kills:         doc.Lifetime.Kills,
			NodesDepleted: doc.Lifetime.NodesDepleted,
		},
		Mana:    doc.Mana,
		Fog:     append([]bool(nil), doc.Fog...),
		Score:   doc.Score,
		SavedAt: doc.SavedAt,
	}
	for k, v := range doc.Stocks {
		s.Stocks[domain.ResourceKind(k)] = v
	}
	for k, v := range doc.Upgrades {
		s.Upgrades[domain.UpgradeKind(k)] = v
	}
	s.Entities = make([]*domain.Entity, 0, len(doc.Entities))
	for _, ed := range doc.Entities {
		ent := &domain.Entity{
			ID:        ed.ID,
			Kind:      domain.Kind(ed.Kind),
			Pos:       domain.Vec2{X: ed.X, Y: ed.Y},
			ScreenPos: domain.Vec2{X: ed.X, Y: ed.Y},
			HP:        ed.HP,
			MaxHP:     ed.MaxHP,
			Owner:     ed.Owner,
			Level:     ed.Level,
			Exp:       ed.Exp,
		}
		if bd := ed.Behavior; bd != nil {
			b := &domain.Behavior{
				State:    domain.BehaviorState(bd.State),
				TargetID: bd.TargetID,
				WorkedMS: bd.WorkedMS,
			}
			if bd.TargetX != nil && bd.TargetY != nil {
				b.TargetPos = &domain.Vec2{X: *bd.TargetX, Y: *bd.TargetY}
			}
			ent.Behavior = b
		}
		s.Entities = append(s.Entities, ent)
	}
	return s
}
