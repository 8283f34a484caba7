package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reviewdesk/internal/domain"

	"github.com/redis/go-redis/v9"
)

const voteCountsPrefix = "votes:counts:"

// VoteCountCache stores per-reply vote counts as JSON strings.
type VoteCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVoteCountCache(client *RedisClient, ttl time.Duration) *VoteCountCache {
	return &VoteCountCache{client: client.Client, ttl: ttl}
}

func (c *VoteCountCache) key(replyID string) string {
	return voteCountsPrefix + replyID
}

// GetMany returns the cached counts; ids that are not cached are absent.
func (c *VoteCountCache) GetMany(ctx context.Context, replyIDs []string) (map[string]domain.VoteCounts, error) {
	out := make(map[string]domain.VoteCounts, len(replyIDs))
	if len(replyIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(replyIDs))
	for i, id := range replyIDs {
		keys[i] = c.key(id)
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget vote counts: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var counts domain.VoteCounts
		if err := json.Unmarshal([]byte(s), &counts); err != nil {
			continue
		}
		out[replyIDs[i]] = counts
	}
	return out, nil
}

// SetMany overwrites the cached counts. Writers that just recomputed counts
// from the ledger use it.
func (c *VoteCountCache) SetMany(ctx context.Context, counts map[string]domain.VoteCounts) error {
	return c.store(ctx, counts, false)
}

// FillMany stores counts only for keys that are still absent, so a read that
// raced with a vote never replaces the counts that vote wrote.
func (c *VoteCountCache) FillMany(ctx context.Context, counts map[string]domain.VoteCounts) error {
	return c.store(ctx, counts, true)
}

func (c *VoteCountCache) store(ctx context.Context, counts map[string]domain.VoteCounts, onlyMissing bool) error {
	if len(counts) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for id, vc := range counts {
		b, err := json.Marshal(vc)
		if err != nil {
			return fmt.Errorf("marshal vote counts: %w", err)
		}
		if onlyMissing {
			pipe.SetNX(ctx, c.key(id), b, c.ttl)
		} else {
			pipe.Set(ctx, c.key(id), b, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store vote counts: %w", err)
	}
	return nil
}

func (c *VoteCountCache) Invalidate(ctx context.Context, replyID string) error {
	if err := c.client.Del(ctx, c.key(replyID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("invalidate vote counts: %w", err)
	}
	return nil
}
