package pagerank

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash RedisSource reads when none is configured.
const DefaultRedisKey = "opentrep:pagerank"

// RedisSource loads the raw weight map from a single Redis hash, where
// each field is a POR key and each value a decimal weight string. This
// lets an operator refresh PageRank weights out-of-band without
// restarting the resolver, by rewriting the hash and reloading.
type RedisSource struct {
	Client *redis.Client
	Key    string // hash to read, DefaultRedisKey when empty
}

func (r RedisSource) Load() (map[string]float64, error) {
	return r.LoadContext(context.Background())
}

func (r RedisSource) LoadContext(ctx context.Context) (map[string]float64, error) {
	key := r.Key
	if key == "" {
		key = DefaultRedisKey
	}
	fields, err := r.Client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	raw := make(map[string]float64, len(fields))
	for key, val := range fields {
		weight, err := strconv.ParseFloat(val, 64)
		if err != nil || weight <= 0 {
			continue
		}
		raw[key] = weight
	}
	return raw, nil
}
