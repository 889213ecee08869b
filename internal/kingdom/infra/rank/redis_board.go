package rank

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"TreeKingdom/internal/kingdom/app/port"
)

const (
	scoreKey = "rank:kingdom:score"
	nameKey  = "rank:kingdom:name"
)

// RedisBoard 用 ZSET 维护全服积分榜，HASH 存展示名。
// 提交是幂等覆盖：同一玩家只保留最新积分。
type RedisBoard struct {
	rdb *redis.Client
}

func NewRedisBoard(rdb *redis.Client) *RedisBoard {
	return &RedisBoard{rdb: rdb}
}

func (b *RedisBoard) SubmitScore(ctx context.Context, playerID int64, displayName string, score int64) error {
	member := strconv.FormatInt(playerID, 10)
	pipe := b.rdb.Pipeline()
	pipe.ZAdd(ctx, scoreKey, redis.Z{Score: float64(score), Member: member})
	if displayName != "" {
		pipe.HSet(ctx, nameKey, member, displayName)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (b *RedisBoard) TopScores(ctx context.Context, n int64) ([]port.RankEntry, error) {
	if n <= 0 {
		n = 10
	}
	zs, err := b.rdb.ZRevRangeWithScores(ctx, scoreKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	if len(zs) == 0 {
		return nil, nil
	}

	members := make([]string, len(zs))
	for i, z := range zs {
		members[i], _ = z.Member.(string)
	}
	names, err := b.rdb.HMGet(ctx, nameKey, members...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]port.RankEntry, 0, len(zs))
	for i, z := range zs {
		pid, _ := strconv.ParseInt(members[i], 10, 64)
		name := ""
		if i < len(names) {
			if s, ok := names[i].(string); ok {
				name = s
			}
		}
		out = append(out, port.RankEntry{
			PlayerID:    pid,
			DisplayName: name,
			Score:       int64(z.Score),
			Rank:        int64(i + 1),
		})
	}
	return out, nil
}
