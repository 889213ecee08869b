package domain

type ResourceKind string

const (
	ResWood  ResourceKind = "wood"
	ResStone ResourceKind = "stone"
	ResGold  ResourceKind = "gold"
	ResFood  ResourceKind = "food"
)

// ResourceKinds 是资源的规范顺序；TryDebit 报"第一个不足的资源"按此序。
var ResourceKinds = []ResourceKind{ResWood, ResStone, ResGold, ResFood}

// Ledger 是玩家的资源账本。容量是四种资源共用的上限。
//
// 入账策略（全资源统一）：超出容量的部分截断丢弃，不整单拒绝。
type Ledger struct {
	stocks   map[ResourceKind]int
	capacity int
}

func NewLedger(capacity int) *Ledger {
	return &Ledger{
		stocks:   make(map[ResourceKind]int, len(ResourceKinds)),
		capacity: capacity,
	}
}

func (l *Ledger) Capacity() int {
	return l.capacity
}

func (l *Ledger) SetCapacity(c int) {
	if c < 0 {
		c = 0
	}
	l.capacity = c
}

func (l *Ledger) Stock(kind ResourceKind) int {
	return l.stocks[kind]
}

// Stocks 返回账本拷贝。
func (l *Ledger) Stocks() map[ResourceKind]int {
	out := make(map[ResourceKind]int, len(ResourceKinds))
	for _, k := range ResourceKinds {
		out[k] = l.stocks[k]
	}
	return out
}

// Credit 入账，超容截断。返回实际入账数量和是否触顶。
func (l *Ledger) Credit(kind ResourceKind, amount int) (added int, full bool) {
	if amount <= 0 {
		return 0, false
	}
	room := l.capacity - l.stocks[kind]
	if room <= 0 {
		return 0, true
	}
	if amount > room {
		l.stocks[kind] = l.capacity
		return room, true
	}
	l.stocks[kind] += amount
	return amount, false
}

// TryDebit 原子扣账：任一资源不足则整单不动，
// 返回第一个不足的资源名（按 ResourceKinds 序）供提示。
func (l *Ledger) TryDebit(cost map[ResourceKind]int) (ResourceKind, bool) {
	for _, k := range ResourceKinds {
		need := cost[k]
		if need > 0 && l.stocks[k] < need {
			return k, false
		}
	}
	for _, k := range ResourceKinds {
		if need := cost[k]; need > 0 {
			l.stocks[k] -= need
		}
	}
	return "", true
}

// ForceSet 仅用于从持久化状态恢复。
func (l *Ledger) ForceSet(kind ResourceKind, amount int) {
	if amount < 0 {
		amount = 0
	}
	l.stocks[kind] = amount
}
