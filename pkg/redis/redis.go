package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/config"
)

// Client Redis クライアントラッパー
// 現在はログアウト時の Token ブラックリストに使用
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis 接続を作成し Ping で疎通確認する
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 接続に失敗: %w", err)
	}

	logger.Info("Redis 接続完了", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token ブラックリスト ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken JWT ID をブラックリストに登録する。TTL は Token の残存期間
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 既に期限切れの Token は登録不要
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted JWT ID がブラックリストに登録済みか確認する
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close Redis 接続を閉じる
func (c *Client) Close() error {
	return c.rdb.Close()
}
