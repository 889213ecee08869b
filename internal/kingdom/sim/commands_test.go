package sim

import (
	"errors"
	"testing"
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

func TestBuild_资源不足整单拒绝(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))

	_, err := e.IssueBuildOrder(domain.KindHouse, domain.Vec2{X: 18, Y: 18})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("期望资源不足, got %v", err)
	}
	if e.store.Len() != 0 {
		t.Fatalf("拒绝后世界不应有变化")
	}

	e.profile.Ledger.ForceSet(domain.ResWood, 50)
	b, err := e.IssueBuildOrder(domain.KindHouse, domain.Vec2{X: 18, Y: 18})
	if err != nil {
		t.Fatalf("建造失败: %v", err)
	}
	if e.profile.Ledger.Stock(domain.ResWood) != 0 {
		t.Fatalf("应扣 50 木")
	}
	if e.store.Find(b.ID) == nil {
		t.Fatalf("建筑应入世界")
	}
}

func TestBuild_位置校验(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.profile.Ledger.ForceSet(domain.ResWood, 500)

	// 水面
	if _, err := e.IssueBuildOrder(domain.KindHouse, domain.Vec2{X: 0, Y: 0}); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("水面应拒绝, got %v", err)
	}
	// 已占用的格子
	if _, err := e.IssueBuildOrder(domain.KindHouse, domain.Vec2{X: 18, Y: 18}); err != nil {
		t.Fatalf("首次建造失败: %v", err)
	}
	_, err := e.IssueBuildOrder(domain.KindFarm, domain.Vec2{X: 18, Y: 18})
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("占用格应拒绝, got %v", err)
	}
	data := err.(interface{ Data() map[string]any }).Data()
	if data["x"] != 18 || data["y"] != 18 {
		t.Fatalf("错误应带坐标上下文: %v", data)
	}
}

func TestBuild_未知建筑类别(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	if _, err := e.IssueBuildOrder(domain.Kind("castle"), domain.Vec2{X: 18, Y: 18}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("期望未知类别, got %v", err)
	}
}

func TestBuild_仓库扩容立即生效(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.profile.Ledger.ForceSet(domain.ResWood, 80)
	e.profile.Ledger.ForceSet(domain.ResStone, 40)

	if _, err := e.IssueBuildOrder(domain.KindStorage, domain.Vec2{X: 18, Y: 18}); err != nil {
		t.Fatalf("建仓库失败: %v", err)
	}
	want := e.tun.CapacityBase + e.tun.StorageBuildingCap
	if e.profile.Ledger.Capacity() != want {
		t.Fatalf("容量应为 %d, got %d", want, e.profile.Ledger.Capacity())
	}
}

func TestSpawnUnit_人口上限(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.profile.Ledger.ForceSet(domain.ResFood, 500)
	for i := 0; i < e.profile.MaxPop; i++ {
		if _, err := e.IssueSpawnUnit(domain.KindWorker); err != nil {
			t.Fatalf("第 %d 个工人招募失败: %v", i+1, err)
		}
	}

	_, err := e.IssueSpawnUnit(domain.KindWorker)
	if !errors.Is(err, ErrPopulationFull) {
		t.Fatalf("满员应拒绝, got %v", err)
	}
	if e.profile.Ledger.Stock(domain.ResFood) != 500-50*e.profile.MaxPop {
		t.Fatalf("拒绝的招募不应扣资源")
	}
}

func TestSpawnUnit_英雄全局唯一(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.profile.Ledger.ForceSet(domain.ResGold, 500)
	e.profile.Ledger.ForceSet(domain.ResFood, 500)

	if _, err := e.IssueSpawnUnit(domain.KindHero); err != nil {
		t.Fatalf("招募英雄失败: %v", err)
	}
	if _, err := e.IssueSpawnUnit(domain.KindHero); !errors.Is(err, ErrHeroExists) {
		t.Fatalf("第二个英雄应拒绝, got %v", err)
	}
}

func TestMoveOrder_只有英雄听指挥(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.addUnit(domain.KindWorker, domain.Vec2{X: 20, Y: 20})

	if err := e.IssueMoveOrder(domain.Vec2{X: 10, Y: 10}); !errors.Is(err, ErrHeroMissing) {
		t.Fatalf("无英雄应拒绝, got %v", err)
	}

	hero := e.addUnit(domain.KindHero, domain.Vec2{X: 20, Y: 20})
	if err := e.IssueMoveOrder(domain.Vec2{X: 10, Y: 10}); err != nil {
		t.Fatalf("下达移动指令失败: %v", err)
	}
	if hero.Behavior.State != domain.StateMoving || hero.Behavior.TargetPos == nil {
		t.Fatalf("英雄应进入 MOVING")
	}
	if hero.Behavior.TargetPos.X != 10 || hero.Behavior.TargetPos.Y != 10 {
		t.Fatalf("目标点错误: %v", hero.Behavior.TargetPos)
	}
}

func TestHero_按指令走到点后停下(t *testing.T) {
	e, clk := newTestEngine(t, dayStart(DefaultTuning()))
	hero := e.addUnit(domain.KindHero, domain.Vec2{X: 20, Y: 20})
	// 旁边放个资源点，验证英雄不会自动去采
	e.store.Insert(domain.NewEntity("tree1", domain.KindTree, domain.OwnerNature, domain.Vec2{X: 21, Y: 20}, 100))

	if err := e.IssueMoveOrder(domain.Vec2{X: 26, Y: 20}); err != nil {
		t.Fatalf("移动指令失败: %v", err)
	}
	run(e, clk, 10*time.Second)

	if hero.Behavior.State != domain.StateIdle {
		t.Fatalf("到点后应停下, got %s", hero.Behavior.State)
	}
	if domain.GridDistance(hero.Pos, domain.Vec2{X: 26, Y: 20}) > e.tun.ArrivalEps {
		t.Fatalf("英雄没走到目标附近: %v", hero.Pos)
	}
	if e.store.Find("tree1") == nil {
		t.Fatalf("英雄不应自动采集")
	}
}

func TestCastSpell_法力与冷却(t *testing.T) {
	e, clk := newTestEngine(t, dayStart(DefaultTuning()))

	if err := e.IssueCastSpell(SpellHaste); err != nil {
		t.Fatalf("首次施法失败: %v", err)
	}
	if e.profile.Mana != e.profile.ManaMax-e.tun.Spells[SpellHaste].ManaCost {
		t.Fatalf("应扣法力, got %v", e.profile.Mana)
	}
	if !e.hasteUntil.After(clk.Now()) {
		t.Fatalf("加速应生效")
	}

	err := e.IssueCastSpell(SpellHaste)
	if !errors.Is(err, ErrSpellCooldown) {
		t.Fatalf("冷却中应拒绝, got %v", err)
	}

	e.profile.Mana = 10
	if err := e.IssueCastSpell(SpellShield); !errors.Is(err, ErrInsufficientMana) {
		t.Fatalf("法力不足应拒绝, got %v", err)
	}

	// 冷却结束可再施
	clk.Tick(e.tun.Spells[SpellHaste].Cooldown + time.Second)
	e.profile.Mana = 100
	if err := e.IssueCastSpell(SpellHaste); err != nil {
		t.Fatalf("冷却结束应可施法: %v", err)
	}
}

func TestCastSpell_加速影响移速与采集(t *testing.T) {
	e, clk := newTestEngine(t, dayStart(DefaultTuning()))
	w := e.addUnit(domain.KindWorker, domain.Vec2{X: 20, Y: 20})

	base := e.unitSpeed(w, clk.Now())
	work := e.requiredWorkMS(w, clk.Now())

	if err := e.IssueCastSpell(SpellHaste); err != nil {
		t.Fatalf("施法失败: %v", err)
	}
	if got := e.unitSpeed(w, clk.Now()); got != base*e.tun.BuffFactor {
		t.Fatalf("加速移速应乘 %v: %v -> %v", e.tun.BuffFactor, base, got)
	}
	if got := e.requiredWorkMS(w, clk.Now()); got != work/e.tun.BuffFactor {
		t.Fatalf("加速采集时长应除 %v: %v -> %v", e.tun.BuffFactor, work, got)
	}
}

func TestShield_夜袭期间免伤(t *testing.T) {
	tun := DefaultTuning()
	e, clk := newTestEngine(t, dayStart(tun))
	w := e.addUnit(domain.KindWorker, domain.Vec2{X: 20, Y: 20})
	e.store.Insert(domain.NewEntity("raider1", domain.KindRaider, domain.OwnerEnemy, domain.Vec2{X: 20.5, Y: 20}, tun.RaiderHP))

	if err := e.IssueCastSpell(SpellShield); err != nil {
		t.Fatalf("施法失败: %v", err)
	}
	run(e, clk, 5*time.Second)

	if w.HP != w.MaxHP {
		t.Fatalf("护盾期间工人不应掉血, hp=%d", w.HP)
	}
}

func TestTrade_固定汇率兑换(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))

	if err := e.IssueTrade("wood_for_gold"); !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("没货应拒绝, got %v", err)
	}

	e.profile.Ledger.ForceSet(domain.ResWood, 120)
	if err := e.IssueTrade("wood_for_gold"); err != nil {
		t.Fatalf("兑换失败: %v", err)
	}
	if e.profile.Ledger.Stock(domain.ResWood) != 20 {
		t.Fatalf("应扣 100 木, got %d", e.profile.Ledger.Stock(domain.ResWood))
	}
	if e.profile.Ledger.Stock(domain.ResGold) != 20 {
		t.Fatalf("应得 20 金, got %d", e.profile.Ledger.Stock(domain.ResGold))
	}

	if err := e.IssueTrade("nonsense"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("未知兑换应拒绝, got %v", err)
	}
}

func TestBuyUpgrade_等级与费用(t *testing.T) {
	e, _ := newTestEngine(t, dayStart(DefaultTuning()))
	e.profile.Ledger.ForceSet(domain.ResWood, 300)

	if err := e.IssueBuyUpgrade(domain.UpgradePopulation); err != nil {
		t.Fatalf("购买失败: %v", err)
	}
	if e.profile.UpgradeLevel(domain.UpgradePopulation) != 1 {
		t.Fatalf("等级应为 1")
	}
	if e.profile.Ledger.Stock(domain.ResWood) != 200 {
		t.Fatalf("0 级造价 100 木, got %d", e.profile.Ledger.Stock(domain.ResWood))
	}
	if e.profile.MaxPop != e.tun.PopBase+e.tun.PopUpgradeBonus {
		t.Fatalf("人口上限应重算, got %d", e.profile.MaxPop)
	}

	// 1 级造价 160
	if err := e.IssueBuyUpgrade(domain.UpgradePopulation); err != nil {
		t.Fatalf("二级购买失败: %v", err)
	}
	if e.profile.Ledger.Stock(domain.ResWood) != 40 {
		t.Fatalf("1 级造价 160 木, got %d", e.profile.Ledger.Stock(domain.ResWood))
	}

	if err := e.IssueBuyUpgrade(domain.UpgradeKind("magic")); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("未知升级应拒绝, got %v", err)
	}

	e.profile.Upgrades[domain.UpgradeTool] = domain.UpgradeMaxLevel
	if err := e.IssueBuyUpgrade(domain.UpgradeTool); !errors.Is(err, ErrUpgradeMaxed) {
		t.Fatalf("满级应拒绝, got %v", err)
	}
}
