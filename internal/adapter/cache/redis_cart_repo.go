package cache

import (
	"context"
	"encoding/json"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisCartRepo keeps one cart per shopper as a JSON blob. The cart is
// transient session state; Redis is its single authoritative store.
type RedisCartRepo struct {
	rdb *redis.Client
}

func NewRedisCartRepo(rdb *redis.Client) *RedisCartRepo {
	return &RedisCartRepo{rdb: rdb}
}

func cartKey(userID string) string { return "cart:" + userID }

func (r *RedisCartRepo) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	raw, err := r.rdb.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the stored items wholesale: the last write wins, matching
// the cart's last-writer-wins contract.
func (r *RedisCartRepo) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, cartKey(userID), raw, 0).Err()
}

func (r *RedisCartRepo) Clear(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, cartKey(userID)).Err()
}

var _ usecase.CartRepo = (*RedisCartRepo)(nil)
