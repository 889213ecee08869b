package domain

import "testing"

func TestLedger_TryDebit_不足时整单不动(t *testing.T) {
	l := NewLedger(500)
	l.Credit(ResWood, 100)
	l.Credit(ResStone, 10)

	lack, ok := l.TryDebit(map[ResourceKind]int{ResWood: 50, ResStone: 20})
	if ok {
		t.Fatalf("石头不足应拒绝")
	}
	if lack != ResStone {
		t.Fatalf("期望报 stone 不足, got %s", lack)
	}
	if l.Stock(ResWood) != 100 || l.Stock(ResStone) != 10 {
		t.Fatalf("拒绝后库存应保持原样: wood=%d stone=%d", l.Stock(ResWood), l.Stock(ResStone))
	}

	if _, ok := l.TryDebit(map[ResourceKind]int{ResWood: 50, ResStone: 10}); !ok {
		t.Fatalf("足额时应扣成功")
	}
	if l.Stock(ResWood) != 50 || l.Stock(ResStone) != 0 {
		t.Fatalf("扣账结果错误: wood=%d stone=%d", l.Stock(ResWood), l.Stock(ResStone))
	}
}

func TestLedger_TryDebit_报第一个不足的资源(t *testing.T) {
	l := NewLedger(500)
	// wood 和 gold 都不足，按规范顺序应报 wood
	lack, ok := l.TryDebit(map[ResourceKind]int{ResGold: 10, ResWood: 10})
	if ok || lack != ResWood {
		t.Fatalf("期望按 ResourceKinds 序报 wood, got %s", lack)
	}
}

func TestLedger_Credit_超容截断(t *testing.T) {
	l := NewLedger(100)
	added, full := l.Credit(ResWood, 80)
	if added != 80 || full {
		t.Fatalf("未触顶: added=%d full=%v", added, full)
	}
	added, full = l.Credit(ResWood, 50)
	if added != 20 || !full {
		t.Fatalf("应截断到容量: added=%d full=%v", added, full)
	}
	if l.Stock(ResWood) != 100 {
		t.Fatalf("库存应钉在容量上: %d", l.Stock(ResWood))
	}
	added, full = l.Credit(ResWood, 1)
	if added != 0 || !full {
		t.Fatalf("满仓入账应为 0: added=%d full=%v", added, full)
	}
}

func TestLedger_容量对每种资源独立生效(t *testing.T) {
	l := NewLedger(100)
	l.Credit(ResWood, 100)
	added, full := l.Credit(ResFood, 60)
	if added != 60 || full {
		t.Fatalf("wood 满不影响 food 入账: added=%d full=%v", added, full)
	}
}
