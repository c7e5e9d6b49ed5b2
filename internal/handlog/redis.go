package handlog

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisSink pushes each record as JSON onto the tail of a Redis list.
type RedisSink struct {
	rdclient *redis.Client
	key      string
}

// NewRedisSink connects to addr and checks the server is reachable.
func NewRedisSink(ctx context.Context, addr, password string, db int, key string) (*RedisSink, error) {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdclient.Ping(ctx).Err(); err != nil {
		rdclient.Close()
		return nil, fmt.Errorf("handlog: redis %s: %w", addr, err)
	}
	return NewRedisSinkWithClient(rdclient, key), nil
}

// NewRedisSinkWithClient wraps an existing client.
func NewRedisSinkWithClient(rdclient *redis.Client, key string) *RedisSink {
	return &RedisSink{rdclient: rdclient, key: key}
}

func (r *RedisSink) Write(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("handlog: encode %s: %w", rec.HandID, err)
	}
	if err := r.rdclient.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("handlog: rpush %s: %w", r.key, err)
	}
	return nil
}

// Range returns records start..stop (inclusive, negative from the end) from
// the list.
func (r *RedisSink) Range(ctx context.Context, start, stop int64) ([]Record, error) {
	items, err := r.rdclient.LRange(ctx, r.key, start, stop).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	out := make([]Record, len(items))
	for i, item := range items {
		if err := json.Unmarshal([]byte(item), &out[i]); err != nil {
			return nil, fmt.Errorf("handlog: decode %s[%d]: %w", r.key, int(start)+i, err)
		}
	}
	return out, nil
}

func (r *RedisSink) Close() error {
	return r.rdclient.Close()
}
