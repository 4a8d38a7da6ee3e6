package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/supportbot/nlu-go/internal/nlu"
)

const keyPrefix = "nlu:parse:"

// ResultCache 识别结果缓存。识别是纯函数，按标准化文本缓存是安全的
type ResultCache interface {
	Get(ctx context.Context, normalized string) (nlu.Result, bool, error)
	Set(ctx context.Context, normalized string, result nlu.Result) error
}

// RedisCache 基于 Redis 的识别结果缓存
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	version string // 关键词表指纹，换表后旧缓存自然失效
}

// NewRedisCache 创建 Redis 缓存
func NewRedisCache(client *redis.Client, ttl time.Duration, version string) *RedisCache {
	return &RedisCache{
		client:  client,
		ttl:     ttl,
		version: version,
	}
}

// Get 读取缓存，未命中时返回 false
func (c *RedisCache) Get(ctx context.Context, normalized string) (nlu.Result, bool, error) {
	data, err := c.client.Get(ctx, c.Key(normalized)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nlu.Result{}, false, nil
	}
	if err != nil {
		return nlu.Result{}, false, fmt.Errorf("读取缓存失败: %w", err)
	}

	var result nlu.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nlu.Result{}, false, fmt.Errorf("解析缓存失败: %w", err)
	}
	return result, true, nil
}

// Set 写入缓存
func (c *RedisCache) Set(ctx context.Context, normalized string, result nlu.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化缓存失败: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(normalized), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Key 缓存键：前缀 + 表指纹 + 文本的 SHA1 UUID
func (c *RedisCache) Key(normalized string) string {
	return keyPrefix + c.version + ":" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(normalized)).String()
}

// Fingerprint 计算关键词表指纹
func Fingerprint(tables *nlu.Tables) string {
	data, err := json.Marshal(tables)
	if err != nil {
		return "unversioned"
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String()[:8]
}
