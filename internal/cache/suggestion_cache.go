package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"

	"github.com/redis/go-redis/v9"
)

const suggestKeyPrefix = "suggest:%s:%s"

// SuggestionCache holds directory search results for a short TTL.
// A miss is reported as (nil, false, nil).
type SuggestionCache interface {
	Get(ctx context.Context, tenantID, query string) ([]domain.Customer, bool, error)
	Set(ctx context.Context, tenantID, query string, customers []domain.Customer) error
}

type redisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSuggestionCache(client *redis.Client, ttl time.Duration) SuggestionCache {
	return &redisSuggestionCache{client: client, ttl: ttl}
}

func suggestKey(tenantID, query string) string {
	return fmt.Sprintf(suggestKeyPrefix, tenantID, strings.ToLower(query))
}

func (r *redisSuggestionCache) Get(ctx context.Context, tenantID, query string) ([]domain.Customer, bool, error) {
	data, err := r.client.Get(ctx, suggestKey(tenantID, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var customers []domain.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, false, err
	}
	return customers, true, nil
}

func (r *redisSuggestionCache) Set(ctx context.Context, tenantID, query string, customers []domain.Customer) error {
	data, err := json.Marshal(customers)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, suggestKey(tenantID, query), data, r.ttl).Err()
}
