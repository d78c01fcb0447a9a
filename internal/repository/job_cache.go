package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

// JobListCache caches open-job board pages in Redis for a short TTL.
// The board is read far more often than it changes, and a slightly stale
// page is harmless: apply and hire re-read the job inside their own
// transactions.
type JobListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobListCache wraps a Redis client.
func NewJobListCache(client *redis.Client, ttl time.Duration) *JobListCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &JobListCache{client: client, ttl: ttl}
}

type cachedJobPage struct {
	Jobs  []models.Job `json:"jobs"`
	Total int          `json:"total"`
}

// Get returns a cached page, with found=false on miss.
func (c *JobListCache) Get(ctx context.Context, filter models.JobFilter) ([]models.Job, int, bool) {
	raw, err := c.client.Get(ctx, c.key(filter)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return nil, 0, false
		}
		return nil, 0, false
	}

	var page cachedJobPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, 0, false
	}
	return page.Jobs, page.Total, true
}

// Set stores a page. Errors are swallowed: the cache is best-effort.
func (c *JobListCache) Set(ctx context.Context, filter models.JobFilter, jobsList []models.Job, total int) {
	raw, err := json.Marshal(cachedJobPage{Jobs: jobsList, Total: total})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(filter), raw, c.ttl).Err()
}

func (c *JobListCache) key(filter models.JobFilter) string {
	return fmt.Sprintf("jobs:open:%s:%s:%d:%d", filter.City, filter.Subject, filter.Page, filter.PageSize)
}
