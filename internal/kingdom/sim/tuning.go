package sim

import (
	"time"

	"TreeKingdom/internal/kingdom/domain"
)

// Payout 是一次采集脉冲的产出：base + 单位等级*perLevel。
type Payout struct {
	Kind     domain.ResourceKind
	Base     int
	PerLevel int
}

type Spell struct {
	ManaCost float64
	Duration time.Duration
	Cooldown time.Duration
}

type Trade struct {
	In  map[domain.ResourceKind]int
	Out map[domain.ResourceKind]int
}

// Tuning 是模拟引擎的全部数值参数。数值按手感调，不追求严格平衡。
type Tuning struct {
	MapSize  int
	TileSize int

	// 经济
	CapacityBase       int
	StorageBuildingCap int // 每座仓库 +容量
	StorageUpgradeCap  int // 每级仓储升级 +容量
	PopBase            int
	HousePopBonus      int
	PopUpgradeBonus    int
	StartStocks        map[domain.ResourceKind]int
	IncomeInterval     time.Duration
	WatchtowerGold     int
	FarmFood           int

	// 采集/单位
	AggroRadius     float64
	ArrivalEps      float64
	BaseSpeed       float64 // 格/秒
	SpeedPerLevel   float64
	SpeedPerUpgrade float64
	BuffFactor      float64 // 加速 buff：移速乘它，采集时长除它
	HeroBuffRadius  float64
	BaseWorkMS      float64
	ToolWorkMSCut   float64 // 每级工具升级缩短的采集毫秒数
	MinWorkMS       float64
	HarvestExp      int
	LevelUpExp      int // 升级阈值 = level * LevelUpExp
	NodeHP          int
	FogRadius       float64
	ScreenEasePerS  float64

	// 战斗
	MeleeRange       float64
	RaiderHP         int
	RaiderDamage     int
	RaiderHitPerSec  float64
	RaiderSpeed      float64
	SoldierDamage    int
	WarDamageBonus   int // 每级战争升级 +伤害
	SoldierHitPerSec float64
	SoldierSpeed     float64

	// 昼夜与袭击
	CycleDuration   time.Duration
	NightFraction   float64 // 周期末尾的黑夜占比
	RaidInterval    time.Duration
	RaidUnitMin     int // 单位数达到才会触发袭击
	RaidSpawnRadius float64

	// 资源刷新
	NodeSpawnBase   time.Duration
	NodeSpawnFast   time.Duration
	NodeLowWater    int // 野外节点少于该值进入快速补充
	SpawnAttempts   int
	ProtectedRadius float64 // 主堡周围禁刷半径
	NodeWeights     []NodeWeight

	// 法力
	ManaMax     float64
	ManaRegenPS float64

	Payouts       map[domain.Kind]Payout
	UnitCosts     map[domain.Kind]map[domain.ResourceKind]int
	BuildingCosts map[domain.Kind]map[domain.ResourceKind]int
	UnitHP        map[domain.Kind]int
	BuildingHP    map[domain.Kind]int
	Spells        map[string]Spell
	Trades        map[string]Trade
	ScoreWeights  ScoreWeights
}

type NodeWeight struct {
	Kind   domain.Kind
	Weight float64
}

type ScoreWeights struct {
	Stock       map[domain.ResourceKind]int64
	UnitBase    map[domain.Kind]int64
	UnitPerLvl  int64
	Building    map[domain.Kind]int64
	UpgradeLvl  int64
	Achievement int64
}

func DefaultTuning() Tuning {
	return Tuning{
		MapSize:  40,
		TileSize: 64,

		CapacityBase:       500,
		StorageBuildingCap: 200,
		StorageUpgradeCap:  250,
		PopBase:            5,
		HousePopBonus:      2,
		PopUpgradeBonus:    2,
		StartStocks: map[domain.ResourceKind]int{
			domain.ResWood: 150,
			domain.ResGold: 100,
			domain.ResFood: 50,
		},
		IncomeInterval: 10 * time.Second,
		WatchtowerGold: 5,
		FarmFood:       8,

		AggroRadius:     30,
		ArrivalEps:      1.0,
		BaseSpeed:       2.0,
		SpeedPerLevel:   0.1,
		SpeedPerUpgrade: 0.15,
		BuffFactor:      1.5,
		HeroBuffRadius:  8,
		BaseWorkMS:      10000,
		ToolWorkMSCut:   600,
		MinWorkMS:       2000,
		HarvestExp:      25,
		LevelUpExp:      100,
		NodeHP:          100,
		FogRadius:       6,
		ScreenEasePerS:  10,

		MeleeRange:       1.5,
		RaiderHP:         40,
		RaiderDamage:     5,
		RaiderHitPerSec:  0.5,
		RaiderSpeed:      1.5,
		SoldierDamage:    10,
		WarDamageBonus:   2,
		SoldierHitPerSec: 0.6,
		SoldierSpeed:     2.2,

		CycleDuration:   4 * time.Minute,
		NightFraction:   0.3,
		RaidInterval:    10 * time.Second,
		RaidUnitMin:     4,
		RaidSpawnRadius: 8,

		NodeSpawnBase:   8 * time.Second,
		NodeSpawnFast:   2 * time.Second,
		NodeLowWater:    12,
		SpawnAttempts:   50,
		ProtectedRadius: 4,
		NodeWeights: []NodeWeight{
			{Kind: domain.KindTree, Weight: 0.35},
			{Kind: domain.KindDeer, Weight: 0.35},
			{Kind: domain.KindStoneNode, Weight: 0.20},
			{Kind: domain.KindGoldNode, Weight: 0.08},
			{Kind: domain.KindChest, Weight: 0.02},
		},

		ManaMax:     100,
		ManaRegenPS: 1,

		Payouts: map[domain.Kind]Payout{
			domain.KindTree:      {Kind: domain.ResWood, Base: 20, PerLevel: 2},
			domain.KindStoneNode: {Kind: domain.ResStone, Base: 10, PerLevel: 2},
			domain.KindGoldNode:  {Kind: domain.ResGold, Base: 8, PerLevel: 1},
			domain.KindDeer:      {Kind: domain.ResFood, Base: 15, PerLevel: 2},
			domain.KindChest:     {Kind: domain.ResGold, Base: 25},
		},
		UnitCosts: map[domain.Kind]map[domain.ResourceKind]int{
			domain.KindWorker:  {domain.ResFood: 50},
			domain.KindSoldier: {domain.ResGold: 30, domain.ResStone: 20},
			domain.KindHero:    {domain.ResGold: 200, domain.ResFood: 100},
		},
		BuildingCosts: map[domain.Kind]map[domain.ResourceKind]int{
			domain.KindHouse:      {domain.ResWood: 50},
			domain.KindFarm:       {domain.ResWood: 60},
			domain.KindStorage:    {domain.ResWood: 80, domain.ResStone: 40},
			domain.KindBarracks:   {domain.ResWood: 100, domain.ResStone: 60},
			domain.KindWatchtower: {domain.ResStone: 100, domain.ResGold: 20},
		},
		UnitHP: map[domain.Kind]int{
			domain.KindWorker:  50,
			domain.KindSoldier: 80,
			domain.KindHero:    200,
		},
		BuildingHP: map[domain.Kind]int{
			domain.KindHouse:      500,
			domain.KindFarm:       400,
			domain.KindStorage:    600,
			domain.KindBarracks:   800,
			domain.KindWatchtower: 600,
			domain.KindStronghold: 2000,
		},
		Spells: map[string]Spell{
			SpellHaste:  {ManaCost: 40, Duration: 30 * time.Second, Cooldown: 60 * time.Second},
			SpellShield: {ManaCost: 60, Duration: 20 * time.Second, Cooldown: 90 * time.Second},
		},
		Trades: map[string]Trade{
			"wood_for_gold": {
				In:  map[domain.ResourceKind]int{domain.ResWood: 100},
				Out: map[domain.ResourceKind]int{domain.ResGold: 20},
			},
			"food_for_wood": {
				In:  map[domain.ResourceKind]int{domain.ResFood: 80},
				Out: map[domain.ResourceKind]int{domain.ResWood: 40},
			},
			"stone_for_gold": {
				In:  map[domain.ResourceKind]int{domain.ResStone: 120},
				Out: map[domain.ResourceKind]int{domain.ResGold: 25},
			},
		},
		ScoreWeights: ScoreWeights{
			Stock: map[domain.ResourceKind]int64{
				domain.ResWood:  1,
				domain.ResStone: 1,
				domain.ResGold:  3,
				domain.ResFood:  1,
			},
			UnitBase: map[domain.Kind]int64{
				domain.KindWorker:  20,
				domain.KindSoldier: 30,
				domain.KindHero:    100,
			},
			UnitPerLvl: 5,
			Building: map[domain.Kind]int64{
				domain.KindHouse:      20,
				domain.KindFarm:       30,
				domain.KindStorage:    30,
				domain.KindBarracks:   50,
				domain.KindWatchtower: 40,
			},
			UpgradeLvl:  50,
			Achievement: 100,
		},
	}
}

const (
	SpellHaste  = "haste"
	SpellShield = "shield"
)
