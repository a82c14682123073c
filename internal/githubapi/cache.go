package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jeeems/devbot/internal/models"
)

// TreeCache keeps flattened repository trees in Redis so repeated commands
// against the same repository do not re-walk the Trees API.
type TreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTreeCache(redisURL string, ttl time.Duration) (*TreeCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &TreeCache{client: client, ttl: ttl}, nil
}

func (tc *TreeCache) Close() {
	tc.client.Close()
}

func (tc *TreeCache) Get(ctx context.Context, key string) ([]models.TreeEntry, bool) {
	data, err := tc.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var entries []models.TreeEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (tc *TreeCache) Put(ctx context.Context, key string, entries []models.TreeEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	tc.client.Set(ctx, key, string(data), tc.ttl)
}

func treeKey(owner, name, branch string) string {
	return fmt.Sprintf("tree:%s/%s@%s", owner, name, branch)
}
