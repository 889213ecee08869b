package messages

// KingdomMessage 是所有路由到玩家王国 actor 的请求消息。
// manager 按 PlayerID 找到（或孵化）对应 actor 后转发。
type KingdomMessage interface {
	PlayerID() int64
}

type KingdomBaseMessage struct {
	PlayerId int64
}

func (m KingdomBaseMessage) PlayerID() int64 {
	return m.PlayerId
}

// HK* 是 handler -> kingdom actor 的请求。

// HKEnter 进入游戏：加载存档，没有存档就以 DisplayName 开新王国。
type HKEnter struct {
	KingdomBaseMessage
	DisplayName string
}

// HKSnapshot 拉取一帧完整客户端状态。
type HKSnapshot struct {
	KingdomBaseMessage
}

type HKBuild struct {
	KingdomBaseMessage
	Kind string
	X    float64
	Y    float64
}

type HKSpawnUnit struct {
	KingdomBaseMessage
	Kind string
}

type HKMoveHero struct {
	KingdomBaseMessage
	X float64
	Y float64
}

type HKCastSpell struct {
	KingdomBaseMessage
	Spell string
}

type HKTrade struct {
	KingdomBaseMessage
	Trade string
}

type HKBuyUpgrade struct {
	KingdomBaseMessage
	Upgrade string
}

// HKLeave 玩家下线：最后一次落库后停 actor。
type HKLeave struct {
	KingdomBaseMessage
}

// Reply 是 kingdom actor 的统一应答。
type Reply struct {
	Ok      bool
	Code    string
	Message string
	Payload any
}
