package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"TreeKingdom/internal/shared/serverconfig"
)

func Open(cfg serverconfig.RedisConfig, l *zap.Logger) (*redis.Client, error) {
	if l == nil {
		l = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	l.Info("open redis success", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}
