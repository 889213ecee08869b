package domain

import "testing"

func TestStore_Nearest_平局取先插入(t *testing.T) {
	s := NewStore()
	a := NewEntity("a", KindTree, OwnerNature, Vec2{X: 5, Y: 0}, 100)
	b := NewEntity("b", KindTree, OwnerNature, Vec2{X: 0, Y: 5}, 100)
	s.Insert(a)
	s.Insert(b)

	got, dist := s.Nearest(Vec2{}, func(e *Entity) bool { return e.Kind == KindTree })
	if got == nil || got.ID != "a" {
		t.Fatalf("等距时应取先插入的实体, got=%v", got)
	}
	if dist != 5 {
		t.Fatalf("期望距离 5, got %v", dist)
	}
}

func TestStore_Compact_延迟移除死亡实体(t *testing.T) {
	s := NewStore()
	s.Insert(NewEntity("a", KindTree, OwnerNature, Vec2{}, 100))
	s.Insert(NewEntity("b", KindDeer, OwnerNature, Vec2{X: 1}, 100))
	s.Find("a").HP = 0

	// Compact 前死亡实体仍在集合里（tick 内延迟移除语义）
	if s.Len() != 2 {
		t.Fatalf("Compact 前不应移除, len=%d", s.Len())
	}

	removed := s.Compact()
	if len(removed) != 1 || removed[0].ID != "a" {
		t.Fatalf("期望移除 a, got %v", removed)
	}
	if s.Find("a") != nil || s.Len() != 1 {
		t.Fatalf("Compact 后 a 应消失")
	}
}

func TestStore_Remove_按id移除保持插入序(t *testing.T) {
	s := NewStore()
	s.Insert(NewEntity("a", KindTree, OwnerNature, Vec2{}, 100))
	s.Insert(NewEntity("b", KindDeer, OwnerNature, Vec2{X: 1}, 100))
	s.Insert(NewEntity("c", KindTree, OwnerNature, Vec2{X: 2}, 100))

	s.Remove("b")
	if s.Find("b") != nil || s.Len() != 2 {
		t.Fatalf("b 应被移除, len=%d", s.Len())
	}
	rest := s.Snapshot()
	if rest[0].ID != "a" || rest[1].ID != "c" {
		t.Fatalf("余下实体应保持插入序: %s %s", rest[0].ID, rest[1].ID)
	}

	// 不存在的 id 是空操作
	s.Remove("ghost")
	if s.Len() != 2 {
		t.Fatalf("移除未知 id 不应改变集合, len=%d", s.Len())
	}
}

func TestStore_All_按深度排序(t *testing.T) {
	s := NewStore()
	s.Insert(NewEntity("far", KindTree, OwnerNature, Vec2{X: 9, Y: 9}, 100))
	s.Insert(NewEntity("near", KindTree, OwnerNature, Vec2{X: 1, Y: 1}, 100))
	s.Insert(NewEntity("mid", KindTree, OwnerNature, Vec2{X: 4, Y: 4}, 100))

	all := s.All()
	if all[0].ID != "near" || all[1].ID != "mid" || all[2].ID != "far" {
		t.Fatalf("深度排序错误: %s %s %s", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestStore_Insert_重复id忽略(t *testing.T) {
	s := NewStore()
	s.Insert(NewEntity("a", KindTree, OwnerNature, Vec2{}, 100))
	s.Insert(NewEntity("a", KindTree, OwnerNature, Vec2{X: 3}, 50))
	if s.Len() != 1 {
		t.Fatalf("重复 id 不应重复插入, len=%d", s.Len())
	}
	if s.Find("a").HP != 100 {
		t.Fatalf("首次插入的实体不应被覆盖")
	}
}
