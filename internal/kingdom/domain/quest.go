package domain

import "math/rand"

// Quest 是当前唯一的活跃任务：收集某种资源到目标量，完成发金币奖励。
// 完成后立即被新任务替换，玩家任何时刻都有活跃任务。
type Quest struct {
	Kind     ResourceKind `json:"kind"`
	Target   int          `json:"target"`
	Progress int          `json:"progress"`
	Reward   int          `json:"reward"`
	Active   bool         `json:"active"`
}

var questKinds = []ResourceKind{ResWood, ResStone, ResGold, ResFood}

// NewQuest 随机生成一个活跃任务。
func NewQuest(rng *rand.Rand) Quest {
	kind := questKinds[rng.Intn(len(questKinds))]
	target := (rng.Intn(8) + 3) * 50 // 150 ~ 500
	return Quest{
		Kind:   kind,
		Target: target,
		Reward: target / 5,
		Active: true,
	}
}

// Advance 累计进度，只对当前任务的资源种类生效。返回是否完成。
func (q *Quest) Advance(kind ResourceKind, amount int) bool {
	if !q.Active || kind != q.Kind || amount <= 0 {
		return false
	}
	q.Progress += amount
	if q.Progress >= q.Target {
		q.Active = false
		return true
	}
	return false
}
