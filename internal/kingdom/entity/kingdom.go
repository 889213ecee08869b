package entity

import "TreeKingdom/internal/kingdom/sim"

// Kingdom 是单个玩家王国的内存聚合：模拟引擎 + 脏标记。
// 只在玩家 actor 的 goroutine 内被访问。
type Kingdom struct {
	playerID int64
	engine   *sim.Engine
}

// KingdomPersistSnapshot 是一次落库的不可变快照。
// version 由 DC 递增分配，写队列里同一玩家只保留最高版本。
type KingdomPersistSnapshot struct {
	Version uint64
	State   *sim.State
}

func NewKingdom(playerID int64, engine *sim.Engine) *Kingdom {
	return &Kingdom{playerID: playerID, engine: engine}
}

func (k *Kingdom) ID() int64 {
	return k.playerID
}

func (k *Kingdom) Engine() *sim.Engine {
	return k.engine
}

func (k *Kingdom) Dirty() bool {
	if k == nil {
		return false
	}
	return k.engine.Dirty()
}

func (k *Kingdom) ClearDirty() {
	if k == nil {
		return
	}
	k.engine.ClearDirty()
}

// BuildPersistSnapshot 导出深拷贝状态。不脏则不生成。
func (k *Kingdom) BuildPersistSnapshot(version uint64) (*KingdomPersistSnapshot, bool) {
	if k == nil || !k.engine.Dirty() {
		return nil, false
	}
	return &KingdomPersistSnapshot{
		Version: version,
		State:   k.engine.ExportState(),
	}, true
}
