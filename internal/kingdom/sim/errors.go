package sim

import "TreeKingdom/modules/kit/errx"

// 业务拒绝错误：命令入口的守卫统一返回这些哨兵，
// 接口层按 code 映射给客户端提示。tick 内部不抛错，AI 失败就地回退 IDLE。
var (
	ErrInsufficientResources = errx.NewBiz("KINGDOM_INSUFFICIENT_RESOURCES", "资源不足")
	ErrInsufficientMana      = errx.NewBiz("KINGDOM_INSUFFICIENT_MANA", "法力不足")
	ErrInvalidPlacement      = errx.NewBiz("KINGDOM_INVALID_PLACEMENT", "无法在此建造")
	ErrPopulationFull        = errx.NewBiz("KINGDOM_POPULATION_FULL", "人口已达上限")
	ErrUnknownKind           = errx.NewBiz("KINGDOM_UNKNOWN_KIND", "未知类别")
	ErrUpgradeMaxed          = errx.NewBiz("KINGDOM_UPGRADE_MAXED", "已到最高等级")
	ErrSpellCooldown         = errx.NewBiz("KINGDOM_SPELL_COOLDOWN", "法术冷却中")
	ErrHeroMissing           = errx.NewBiz("KINGDOM_HERO_MISSING", "没有可指挥的英雄")
	ErrHeroExists            = errx.NewBiz("KINGDOM_HERO_EXISTS", "英雄已存在")
)
