package domain

import "testing"

func TestNewEntity_只有己方单位带行为状态(t *testing.T) {
	cases := []struct {
		kind     Kind
		owner    string
		behavior bool
	}{
		{KindWorker, "p1", true},
		{KindSoldier, "p1", true},
		{KindHero, "p1", true},
		{KindRaider, OwnerEnemy, false},
		{KindTree, OwnerNature, false},
		{KindHouse, "p1", false},
	}
	for _, c := range cases {
		e := NewEntity("x", c.kind, c.owner, Vec2{}, 10)
		if got := e.Behavior != nil; got != c.behavior {
			t.Fatalf("%s: behavior=%v, want %v", c.kind, got, c.behavior)
		}
		if c.behavior && e.Behavior.State != StateIdle {
			t.Fatalf("%s: 初始状态应为 IDLE, got %s", c.kind, e.Behavior.State)
		}
	}
}
