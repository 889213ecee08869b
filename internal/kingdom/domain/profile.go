package domain

import "math"

type UpgradeKind string

const (
	UpgradePopulation UpgradeKind = "population" // 人口上限 +2/级
	UpgradeWar        UpgradeKind = "war"        // 士兵伤害加成
	UpgradeTool       UpgradeKind = "tool"       // 缩短采集时长
	UpgradeSpeed      UpgradeKind = "speed"      // 单位移速加成
	UpgradeNature     UpgradeKind = "nature"     // 资源刷新加速
	UpgradeStorage    UpgradeKind = "storage"    // 仓储上限 +250/级
)

var UpgradeKinds = []UpgradeKind{
	UpgradePopulation, UpgradeWar, UpgradeTool,
	UpgradeSpeed, UpgradeNature, UpgradeStorage,
}

const (
	UpgradeMaxLevel       = 10
	upgradeBaseCost       = 100
	upgradeCostMultiplier = 1.6
)

// LifetimeStats 是累计统计，成就阈值只看这里。
type LifetimeStats struct {
	Wood          int `json:"wood"`
	Stone         int `json:"stone"`
	Gold          int `json:"gold"`
	Food          int `json:"food"`
	Kills         int `json:"kills"`
	NodesDepleted int `json:"nodesDepleted"`
}

func (s *LifetimeStats) AddResource(kind ResourceKind, n int) {
	switch kind {
	case ResWood:
		s.Wood += n
	case ResStone:
		s.Stone += n
	case ResGold:
		s.Gold += n
	case ResFood:
		s.Food += n
	}
}

// Achievement 定义：阈值检查只触发一次。
type Achievement struct {
	ID        string
	Stat      func(*LifetimeStats) int
	Threshold int
}

var Achievements = []Achievement{
	{ID: "wood1k", Stat: func(s *LifetimeStats) int { return s.Wood }, Threshold: 1000},
	{ID: "wood10k", Stat: func(s *LifetimeStats) int { return s.Wood }, Threshold: 10000},
	{ID: "stone500", Stat: func(s *LifetimeStats) int { return s.Stone }, Threshold: 500},
	{ID: "gold500", Stat: func(s *LifetimeStats) int { return s.Gold }, Threshold: 500},
	{ID: "food1k", Stat: func(s *LifetimeStats) int { return s.Food }, Threshold: 1000},
	{ID: "firstBlood", Stat: func(s *LifetimeStats) int { return s.Kills }, Threshold: 1},
	{ID: "kills25", Stat: func(s *LifetimeStats) int { return s.Kills }, Threshold: 25},
	{ID: "harvest100", Stat: func(s *LifetimeStats) int { return s.NodesDepleted }, Threshold: 100},
}

// Profile 是玩家聚合：账本、升级、成就、任务、累计统计。
type Profile struct {
	DisplayName  string
	Ledger       *Ledger
	Upgrades     map[UpgradeKind]int
	Achievements map[string]bool
	Quest        Quest
	Lifetime     LifetimeStats
	MaxPop       int
	HeroLevel    int
	Mana         float64
	ManaMax      float64
}

func NewProfile(displayName string, capacity, maxPop int, manaMax float64) *Profile {
	return &Profile{
		DisplayName:  displayName,
		Ledger:       NewLedger(capacity),
		Upgrades:     make(map[UpgradeKind]int),
		Achievements: make(map[string]bool),
		MaxPop:       maxPop,
		HeroLevel:    1,
		Mana:         manaMax,
		ManaMax:      manaMax,
	}
}

func (p *Profile) UpgradeLevel(kind UpgradeKind) int {
	return p.Upgrades[kind]
}

// UpgradeCost 几何增长：base * multiplier^level，木材支付。
func UpgradeCost(level int) int {
	return int(float64(upgradeBaseCost) * math.Pow(upgradeCostMultiplier, float64(level)))
}

// CheckAchievements 对照累计统计补发成就，返回本次新解锁的 id。
// 每个成就至多触发一次。
func (p *Profile) CheckAchievements() []string {
	var fired []string
	for _, a := range Achievements {
		if p.Achievements[a.ID] {
			continue
		}
		if a.Stat(&p.Lifetime) >= a.Threshold {
			p.Achievements[a.ID] = true
			fired = append(fired, a.ID)
		}
	}
	return fired
}
