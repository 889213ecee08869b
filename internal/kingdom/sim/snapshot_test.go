package sim

import (
	"testing"
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

func TestBuildSnapshot_迷雾遮蔽非己方实体(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.addUnit(domain.KindWorker, domain.Vec2{X: 20, Y: 20})
	e.fog.RevealAround(domain.Vec2{X: 20, Y: 20}, 3)
	// 雾内与雾外各放一个野外节点
	e.store.Insert(domain.NewEntity("seen", domain.KindTree, domain.OwnerNature, domain.Vec2{X: 21, Y: 20}, 100))
	e.store.Insert(domain.NewEntity("hidden", domain.KindTree, domain.OwnerNature, domain.Vec2{X: 35, Y: 35}, 100))
	// 己方实体即使在雾外也可见
	far := e.addUnit(domain.KindSoldier, domain.Vec2{X: 8, Y: 8})

	snap := e.BuildSnapshot()

	ids := make(map[string]bool, len(snap.Entities))
	for _, v := range snap.Entities {
		ids[v.ID] = true
	}
	if !ids["seen"] {
		t.Fatalf("雾内节点应下发")
	}
	if ids["hidden"] {
		t.Fatalf("雾外节点不应下发")
	}
	if !ids[far.ID] {
		t.Fatalf("己方实体不受迷雾限制")
	}
}

func TestBuildSnapshot_实体按深度有序(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.fog.RevealAround(e.terrain.Center(), 20)
	e.store.Insert(domain.NewEntity("b", domain.KindTree, domain.OwnerNature, domain.Vec2{X: 25, Y: 25}, 100))
	e.store.Insert(domain.NewEntity("a", domain.KindTree, domain.OwnerNature, domain.Vec2{X: 15, Y: 15}, 100))

	snap := e.BuildSnapshot()
	if len(snap.Entities) != 2 || snap.Entities[0].ID != "a" || snap.Entities[1].ID != "b" {
		t.Fatalf("应按 x+y 升序下发: %v", snap.Entities)
	}
}

func TestBuildSnapshot_加速期间下发增益标记(t *testing.T) {
	e, clk := newTestEngine(t, dayStart(DefaultTuning()))
	w := e.addUnit(domain.KindWorker, domain.Vec2{X: 20, Y: 20})

	if err := e.IssueCastSpell(SpellHaste); err != nil {
		t.Fatalf("施法失败: %v", err)
	}

	snap := e.BuildSnapshot()
	if v := findView(t, snap, w.ID); !v.Buff {
		t.Fatalf("加速生效中工人应带 buff 标记: %+v", v)
	}

	clk.Tick(e.tun.Spells[SpellHaste].Duration + time.Second)
	snap = e.BuildSnapshot()
	if v := findView(t, snap, w.ID); v.Buff {
		t.Fatalf("加速过期后标记应消失: %+v", v)
	}
}

func TestBuildSnapshot_英雄光环覆盖邻近单位(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.addUnit(domain.KindHero, domain.Vec2{X: 20, Y: 20})
	near := e.addUnit(domain.KindWorker, domain.Vec2{X: 21, Y: 20})
	far := e.addUnit(domain.KindWorker, domain.Vec2{X: 20 + e.tun.HeroBuffRadius + 5, Y: 20})

	snap := e.BuildSnapshot()
	if v := findView(t, snap, near.ID); !v.Buff {
		t.Fatalf("光环内工人应带 buff 标记: %+v", v)
	}
	if v := findView(t, snap, far.ID); v.Buff {
		t.Fatalf("光环外工人不应带标记: %+v", v)
	}
}

func TestBuildSnapshot_下发法术剩余冷却(t *testing.T) {
	e, clk := newTestEngine(t, dayStart(DefaultTuning()))

	if n := len(e.BuildSnapshot().Cooldowns); n != 0 {
		t.Fatalf("未施法时冷却表应为空, got %d", n)
	}

	if err := e.IssueCastSpell(SpellHaste); err != nil {
		t.Fatalf("施法失败: %v", err)
	}
	total := e.tun.Spells[SpellHaste].Cooldown.Milliseconds()
	rem, ok := e.BuildSnapshot().Cooldowns[SpellHaste]
	if !ok || rem <= 0 || rem > total {
		t.Fatalf("剩余冷却应在 (0, %d], got %d ok=%v", total, rem, ok)
	}

	clk.Tick(e.tun.Spells[SpellHaste].Cooldown + time.Second)
	if _, ok := e.BuildSnapshot().Cooldowns[SpellHaste]; ok {
		t.Fatalf("冷却结束后不应再下发")
	}
}

func findView(t *testing.T, snap *UISnapshot, id string) EntityView {
	t.Helper()
	for _, v := range snap.Entities {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("帧里找不到实体 %s", id)
	return EntityView{}
}

func TestBuildSnapshot_通知随帧带走(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.pushNotice("raid_incoming")

	first := e.BuildSnapshot()
	if len(first.Notices) != 1 || first.Notices[0] != "raid_incoming" {
		t.Fatalf("通知应在帧里: %v", first.Notices)
	}
	second := e.BuildSnapshot()
	if len(second.Notices) != 0 {
		t.Fatalf("通知只发一次: %v", second.Notices)
	}
}
