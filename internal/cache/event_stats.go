package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"event-gallery-api/internal/model"

	"github.com/redis/go-redis/v9"
)

// 活動統計走 Redis hash，join/leave/上傳/按讚/留言後失效。
// 這裡只是讀取路徑的快取，權威數字永遠在資料庫
const statsTTL = 5 * time.Minute

type EventStatsCache interface {
	Get(ctx context.Context, eventID int) (*model.EventStats, error)
	Set(ctx context.Context, eventID int, stats *model.EventStats) error
	Invalidate(ctx context.Context, eventID int) error
}

// ErrStatsMiss 快取未命中
var ErrStatsMiss = redis.Nil

type EventStatsCacheImpl struct {
	client *redis.Client
}

func NewEventStatsCache(client *redis.Client) EventStatsCache {
	return &EventStatsCacheImpl{
		client: client,
	}
}

func (c *EventStatsCacheImpl) key(eventID int) string {
	return fmt.Sprintf("event:%d:stats", eventID)
}

func (c *EventStatsCacheImpl) Get(ctx context.Context, eventID int) (*model.EventStats, error) {
	result, err := c.client.HGetAll(ctx, c.key(eventID)).Result()
	if err != nil {
		return nil, err
	}

	// HGetAll 對不存在的 key 回傳空 map 而不是 redis.Nil
	if len(result) == 0 {
		return nil, ErrStatsMiss
	}

	stats := &model.EventStats{}
	fields := map[string]*int{
		"participants": &stats.ParticipantCount,
		"images":       &stats.ImageCount,
		"likes":        &stats.TotalLikes,
		"comments":     &stats.TotalComments,
	}
	for field, target := range fields {
		n, err := strconv.Atoi(result[field])
		if err != nil {
			return nil, fmt.Errorf("invalid %s count: %v", field, err)
		}
		*target = n
	}
	return stats, nil
}

func (c *EventStatsCacheImpl) Set(ctx context.Context, eventID int, stats *model.EventStats) error {
	key := c.key(eventID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"participants": stats.ParticipantCount,
		"images":       stats.ImageCount,
		"likes":        stats.TotalLikes,
		"comments":     stats.TotalComments,
	})
	pipe.Expire(ctx, key, statsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *EventStatsCacheImpl) Invalidate(ctx context.Context, eventID int) error {
	return c.client.Del(ctx, c.key(eventID)).Err()
}
