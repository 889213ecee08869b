package handler

type EnterReq struct {
	Token string `json:"token"`
}

type BuildReq struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type SpawnUnitReq struct {
	Kind string `json:"kind"`
}

type MoveHeroReq struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CastSpellReq struct {
	Spell string `json:"spell"`
}

type TradeReq struct {
	Trade string `json:"trade"`
}

type BuyUpgradeReq struct {
	Upgrade string `json:"upgrade"`
}
