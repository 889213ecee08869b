package domain

// Kind 是实体类别（封闭集合）。
type Kind string

const (
	KindWorker     Kind = "worker"
	KindSoldier    Kind = "soldier"
	KindHero       Kind = "hero"
	KindTree       Kind = "tree"
	KindStoneNode  Kind = "stone_node"
	KindGoldNode   Kind = "gold_node"
	KindDeer       Kind = "deer"
	KindChest      Kind = "chest"
	KindRaider     Kind = "raider"
	KindHouse      Kind = "house"
	KindFarm       Kind = "farm"
	KindStorage    Kind = "storage"
	KindBarracks   Kind = "barracks"
	KindWatchtower Kind = "watchtower"
	KindStronghold Kind = "stronghold"
)

const (
	OwnerNature = "nature"
	OwnerEnemy  = "enemy"
)

type BehaviorState string

const (
	StateIdle    BehaviorState = "IDLE"
	StateMoving  BehaviorState = "MOVING"
	StateWorking BehaviorState = "WORKING"
)

// Behavior 只有可自主行动的单位才有（见 NewEntity 的构造约束）。
type Behavior struct {
	State     BehaviorState `json:"state"`
	TargetID  string        `json:"targetId,omitempty"`
	TargetPos *Vec2         `json:"targetPos,omitempty"`
	WorkedMS  float64       `json:"workedMs,omitempty"`
}

type Entity struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Pos       Vec2      `json:"pos"`       // 网格坐标（小数，单位格）
	ScreenPos Vec2      `json:"screenPos"` // 平滑后的像素坐标，仅用于渲染
	HP        int       `json:"hp"`
	MaxHP     int       `json:"maxHp"`
	Owner     string    `json:"owner"`
	Behavior  *Behavior `json:"behavior,omitempty"`
	Level     int       `json:"level,omitempty"`
	Exp       int       `json:"exp,omitempty"`
}

func (k Kind) IsNode() bool {
	switch k {
	case KindTree, KindStoneNode, KindGoldNode, KindDeer, KindChest:
		return true
	}
	return false
}

func (k Kind) IsBuilding() bool {
	switch k {
	case KindHouse, KindFarm, KindStorage, KindBarracks, KindWatchtower, KindStronghold:
		return true
	}
	return false
}

// IsMobile 表示会移动的单位（含敌方）。
func (k Kind) IsMobile() bool {
	switch k {
	case KindWorker, KindSoldier, KindHero, KindRaider:
		return true
	}
	return false
}

func (k Kind) IsOwnedUnit() bool {
	switch k {
	case KindWorker, KindSoldier, KindHero:
		return true
	}
	return false
}

// NewEntity 按类别构造实体并保证不变式：
// - 只有 worker/soldier/hero 带 Behavior（掠夺者由战斗结算直线推进，不走状态机）
func NewEntity(id string, kind Kind, owner string, pos Vec2, hp int) *Entity {
	e := &Entity{
		ID:    id,
		Kind:  kind,
		Pos:   pos,
		HP:    hp,
		MaxHP: hp,
		Owner: owner,
	}
	if kind.IsOwnedUnit() {
		e.Behavior = &Behavior{State: StateIdle}
	}
	if kind.IsOwnedUnit() {
		e.Level = 1
	}
	return e
}

func (e *Entity) Alive() bool {
	return e != nil && e.HP > 0
}

// Depth 用于画家算法的前后排序。
func (e *Entity) Depth() float64 {
	return e.Pos.X + e.Pos.Y
}
