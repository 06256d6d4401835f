package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carshop/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// ProductCache は商品詳細のread-throughキャッシュ。
// redisが無い構成でも動くように、実装はnil-safeに使う（usecase側でnilチェック）。
type ProductCache interface {
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	SetProduct(ctx context.Context, p model.Product) error
	InvalidateProduct(ctx context.Context, productID int64) error
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProductCache(addr string, ttl time.Duration) ProductCache {
	return &redisProductCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func productKey(productID int64) string {
	return fmt.Sprintf("carshop:product:%d", productID)
}

// 見つからなければ (nil, nil)。壊れたキャッシュはミス扱い。
func (c *redisProductCache) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	raw, err := c.client.Get(ctx, productKey(productID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p model.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, nil
	}
	return &p, nil
}

func (c *redisProductCache) SetProduct(ctx context.Context, p model.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err()
}

func (c *redisProductCache) InvalidateProduct(ctx context.Context, productID int64) error {
	return c.client.Del(ctx, productKey(productID)).Err()
}
