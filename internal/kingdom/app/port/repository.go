package port

import (
	"context"

	"TreeKingdom/internal/kingdom/entity"
	"TreeKingdom/internal/kingdom/sim"
)

// KingdomRepository 是王国文档的持久化出口（mongo 实现）。
type KingdomRepository interface {
	// LoadKingdom 不存在时返回 (nil, nil)，调用方据此新建王国。
	LoadKingdom(ctx context.Context, playerID int64) (*sim.State, error)
	// Snapshot 整文档 upsert，按玩家 id 幂等覆盖。
	Snapshot(ctx context.Context, s *entity.KingdomPersistSnapshot) error
}

type RankEntry struct {
	PlayerID    int64  `json:"playerId"`
	DisplayName string `json:"displayName"`
	Score       int64  `json:"score"`
	Rank        int64  `json:"rank"`
}

// RankBoard 是全服积分榜出口（redis 实现）。
type RankBoard interface {
	SubmitScore(ctx context.Context, playerID int64, displayName string, score int64) error
	TopScores(ctx context.Context, n int64) ([]RankEntry, error)
}
