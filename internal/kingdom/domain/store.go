package domain

import "sort"

// Store 是世界内全部实体的集合。
//
// 约束：
//   - 保持插入顺序，线性扫描的"最近目标"平局按插入序决出，可测试
//   - 迭代期间的删除是延迟的：Remove/Compact 产生新切片，
//     不在遍历中原地改动（避免漏访/重访）
type Store struct {
	list []*Entity
	byID map[string]*Entity
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*Entity)}
}

func (s *Store) Insert(e *Entity) {
	if e == nil || e.ID == "" {
		return
	}
	if _, ok := s.byID[e.ID]; ok {
		return
	}
	s.list = append(s.list, e)
	s.byID[e.ID] = e
}

func (s *Store) Remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	next := make([]*Entity, 0, len(s.list)-1)
	for _, e := range s.list {
		if e.ID != id {
			next = append(next, e)
		}
	}
	s.list = next
}

func (s *Store) Find(id string) *Entity {
	return s.byID[id]
}

func (s *Store) Len() int {
	return len(s.list)
}

// Query 返回满足条件的新切片（插入序）。
func (s *Store) Query(pred func(*Entity) bool) []*Entity {
	var out []*Entity
	for _, e := range s.list {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count 等价于 len(Query(pred))，但不分配。
func (s *Store) Count(pred func(*Entity) bool) int {
	n := 0
	for _, e := range s.list {
		if pred(e) {
			n++
		}
	}
	return n
}

// Nearest 从 from 出发做线性最近邻扫描；没有候选时返回 nil。
// 平局取先插入的实体。
func (s *Store) Nearest(from Vec2, pred func(*Entity) bool) (*Entity, float64) {
	var best *Entity
	bestDist := 0.0
	for _, e := range s.list {
		if !pred(e) {
			continue
		}
		d := GridDistance(from, e.Pos)
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best, bestDist
}

// All 返回按深度（x+y 升序）排序的拷贝，供逐帧后绘先画。
// 位置每帧在变，排序必须每次重做。
func (s *Store) All() []*Entity {
	out := make([]*Entity, len(s.list))
	copy(out, s.list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth() < out[j].Depth()
	})
	return out
}

// Snapshot 返回插入序的拷贝，供 tick 内安全遍历。
func (s *Store) Snapshot() []*Entity {
	out := make([]*Entity, len(s.list))
	copy(out, s.list)
	return out
}

// Compact 在 tick 末尾移除死亡实体，返回被移除的实体。
func (s *Store) Compact() []*Entity {
	var removed []*Entity
	next := make([]*Entity, 0, len(s.list))
	for _, e := range s.list {
		if e.HP <= 0 {
			delete(s.byID, e.ID)
			removed = append(removed, e)
			continue
		}
		next = append(next, e)
	}
	s.list = next
	return removed
}
