package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

const defaultRepoTTL = 10 * time.Minute

// RepoCache caches GitHub repo listings per username, backed by Redis.
// Key format: github:repos:<username>
type RepoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepoCache creates a RepoCache wrapping the given Redis client. A
// non-positive ttl falls back to defaultRepoTTL.
func NewRepoCache(client *redis.Client, ttl time.Duration) *RepoCache {
	if ttl <= 0 {
		ttl = defaultRepoTTL
	}
	return &RepoCache{client: client, ttl: ttl}
}

// Get returns the cached listing for username. A missing key is reported
// as ok=false, not an error.
func (c *RepoCache) Get(ctx context.Context, username string) ([]domain.RepoSummary, bool, error) {
	raw, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("repo cache get: %w", err)
	}

	var repos []domain.RepoSummary
	if err := json.Unmarshal(raw, &repos); err != nil {
		return nil, false, fmt.Errorf("repo cache decode: %w", err)
	}
	return repos, true, nil
}

// Set stores the listing for username (expires after the cache TTL).
func (c *RepoCache) Set(ctx context.Context, username string, repos []domain.RepoSummary) error {
	raw, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("repo cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(username), raw, c.ttl).Err()
}

func (c *RepoCache) key(username string) string {
	return "github:repos:" + username
}
