package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dennismutuku2005/stream-wisp-sub001/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	dispatchesKeyPrefix = "dispatches:%s"
	// older summaries are trimmed on insert
	maxDispatchRecords = 500
)

// DispatchCache keeps recent dispatch summaries per tenant, newest first.
type DispatchCache interface {
	AddDispatch(ctx context.Context, record domain.DispatchRecord) error
	GetDispatches(ctx context.Context, tenantID string, page int, pageSize int) ([]domain.DispatchRecord, int64, error)
}

type redisDispatchCache struct {
	client *redis.Client
}

func NewDispatchCache(client *redis.Client) DispatchCache {
	return &redisDispatchCache{client: client}
}

func dispatchesKey(tenantID string) string {
	return fmt.Sprintf(dispatchesKeyPrefix, tenantID)
}

func (r *redisDispatchCache) AddDispatch(ctx context.Context, record domain.DispatchRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := dispatchesKey(record.TenantID)
	member := redis.Z{
		Score:  float64(record.CreatedAt.UnixMilli()),
		Member: payload,
	}

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, key, member)
	pipe.ZRemRangeByRank(ctx, key, 0, -maxDispatchRecords-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisDispatchCache) GetDispatches(ctx context.Context, tenantID string, page int, pageSize int) ([]domain.DispatchRecord, int64, error) {
	key := dispatchesKey(tenantID)

	total, err := r.client.ZCard(ctx, key).Result()
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * pageSize
	stop := start + pageSize - 1

	members, err := r.client.ZRevRange(ctx, key, int64(start), int64(stop)).Result()
	if err != nil {
		return nil, 0, err
	}

	records := make([]domain.DispatchRecord, 0, len(members))
	for _, m := range members {
		var rec domain.DispatchRecord
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			return nil, 0, fmt.Errorf("corrupt dispatch record in %s: %w", key, err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}
